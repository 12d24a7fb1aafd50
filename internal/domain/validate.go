package domain

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("judgeurl", validJudgeURL); err != nil {
		panic(err)
	}
	return v
}

// Validate checks a payload's shape constraints. The returned error is a
// validator.ValidationErrors when the payload is rejected.
func Validate(v any) error {
	return validate.Struct(v)
}

// judgeProblemPaths maps known judge hosts to the path prefixes under which
// individual problems live. A URL must name a specific problem, not just the
// site root or a listing page.
var judgeProblemPaths = map[string][]string{
	"leetcode.com":    {"/problems/"},
	"leetcode.cn":     {"/problems/"},
	"neetcode.io":     {"/problems/"},
	"hackerrank.com":  {"/challenges/"},
	"codeforces.com":  {"/problemset/problem/", "/contest/"},
	"open.kattis.com": {"/problems/"},
}

func validJudgeURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	prefixes, ok := judgeProblemPaths[host]
	if !ok {
		return false
	}
	for _, prefix := range prefixes {
		rest := strings.TrimPrefix(u.Path, prefix)
		if rest != u.Path && strings.Trim(rest, "/") != "" {
			return true
		}
	}
	return false
}
