package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// standardizationRule maps a lowercase token to a canonical display name.
type standardizationRule struct {
	canonical string
	match     func(lower string) bool
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

func containsWithout(sub, without string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(s, sub) && !strings.Contains(s, without)
	}
}

// standardizationRules are tried in order; the first match wins.
var standardizationRules = []standardizationRule{
	{"JavaScript", func(s string) bool { return strings.Contains(s, "javascript") || s == "js" }},
	{"Node.js", contains("node", "js")},
	{"React.js", containsWithout("react", "native")},
	{"React Native", contains("react", "native")},
	{"Next.js", contains("next")},
	{"Express.js", contains("express")},
	{"Vue.js", contains("vue")},
	{"Angular", contains("angular")},
	{"Python", contains("python")},
	{"Java", containsWithout("java", "script")},
	{"HTML", contains("html")},
	{"CSS", contains("css")},
	{"MongoDB", contains("mongodb")},
	{"MySQL", contains("mysql")},
	{"PostgreSQL", contains("postgresql")},
	{"Firebase", contains("firebase")},
	{"AWS", contains("aws")},
	{"Docker", contains("docker")},
	{"Kubernetes", contains("kubernetes")},
	{"Git", containsWithout("git", "hub")},
	{"GitHub", contains("github")},
	{"Material UI", contains("material", "ui")},
	{"Tailwind CSS", contains("tailwind")},
	{"Bootstrap", contains("bootstrap")},
	{"Prisma ORM", contains("prisma")},
	{"NextAuth", contains("nextauth")},
}

// StandardizeSkill maps a loose technology name to its canonical spelling. Names
// no rule recognizes are returned with the first letter upper-cased and the rest
// lower-cased.
func StandardizeSkill(skill string) string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ""
	}

	lower := strings.ToLower(skill)
	for _, rule := range standardizationRules {
		if rule.match(lower) {
			return rule.canonical
		}
	}

	first, size := utf8.DecodeRuneInString(skill)
	return string(unicode.ToUpper(first)) + strings.ToLower(skill[size:])
}
