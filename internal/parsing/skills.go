package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/stackmatch/internal/skills"
)

// techPatterns are matched against the whole document, one per technology domain.
var techPatterns = compileTechPatterns([]string{
	// languages
	`javascript|java|python|c\+\+|c#|php|ruby|go|rust|swift|kotlin|typescript|c|scala|perl|r|matlab|sql|dart|objective-c|bash`,
	// frontend
	`react|angular|vue|html|css|sass|scss|bootstrap|tailwind|jquery|webpack|babel|nextjs|next\.js|nuxt|svelte|ember`,
	// backend
	`node\.?js|express|django|flask|spring|laravel|rails|fastapi|nestjs|koa|asp\.net|gin|echo|fiber|hono`,
	// databases and ORMs
	`mysql|postgresql|mongodb|redis|sqlite|oracle|cassandra|dynamodb|firebase|firestore|mariadb|neo4j|elasticsearch|prisma`,
	// cloud and devops
	`aws|azure|gcp|google\s?cloud|docker|kubernetes|jenkins|gitlab|github|git|ci/cd|vercel|netlify|heroku|terraform|ansible|serverless|cloudflare|monorepo|turbo`,
	// dev tools
	`postman|vs\s?code|visual\s?studio|intellij|eclipse|android\s?studio|xcode|figma|photoshop|sketch|linux|windows|ubuntu|macos`,
	// data science and AI
	`machine\s?learning|data\s?science|artificial\s?intelligence|tensorflow|pytorch|pandas|numpy|scikit-learn|opencv|nlp|deep\s?learning|jupyter|anaconda|keras|spark`,
	// web
	`graphql|rest|api|microservices|socket\.?io|websocket|json|xml|ajax|cors|oauth|jwt|material\s?ui`,
	// mobile
	`react\s?native|flutter|xamarin|ionic|cordova|phonegap|android|ios|swift|kotlin`,
	// testing
	`jest|cypress|selenium|junit|mocha|chai|testing|unit\s?testing|integration\s?testing|e2e|tdd|bdd|jscodeshift`,
	// blockchain
	`blockchain|ethereum|solidity|web3|smart\s?contracts|solana|nft|cryptocurrency|defi`,
	// security and networking
	`wireshark|burp\s?suite|nmap|networking|protocols|cybersecurity|penetration\s?testing`,
	// hardware and misc
	`arduino|raspberry\s?pi|iot|mqtt|tcp/ip|codemod|ast|abstract\s?syntax\s?trees`,
	// JS libraries
	`redux|mobx|axios|lodash|moment|dayjs|chart\.js|d3\.js|three\.js|gsap|framer\s?motion|nextauth`,
	// collaboration
	`git|github|gitlab|bitbucket|svn|mercurial|slack|discord|jira|trello|notion`,
	// OS and shell
	`linux|ubuntu|centos|debian|windows|macos|unix|bash|powershell|zsh|terminal`,
})

var (
	// skillLabelPattern captures the rest of a "Skills: ..." style line
	skillLabelPattern = regexp.MustCompile(`(?i)(?:tech\s*stacks?|skills?|technologies?|tools?|platforms?)[:\s]*([^.\n]*)`)
	skillSeparators   = regexp.MustCompile(`[,•\-\n|/&\s]+`)
	skillStoplist     = regexp.MustCompile(`^(skills?|technologies?|tools?|platforms?|languages?|summary|experience|education|projects?|tech|stack)$`)
)

func compileTechPatterns(groups []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(groups))
	for i, g := range groups {
		patterns[i] = regexp.MustCompile(`(?i)\b(` + g + `)\b`)
	}
	return patterns
}

// Skills returns every technology mentioned in the document, standardized and
// deduplicated case-insensitively in first-seen order.
func (e *Extractor) Skills() []string {
	var raw []string

	for _, p := range techPatterns {
		for _, m := range p.FindAllString(e.text, -1) {
			raw = append(raw, strings.TrimSpace(m))
		}
	}

	raw = append(raw, labeledSkills(e.text)...)

	standardized := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if !plausibleSkillLength(token) {
			continue
		}
		if skillStoplist.MatchString(strings.ToLower(token)) {
			continue
		}
		standardized = append(standardized, StandardizeSkill(token))
	}

	return skills.Dedupe(standardized)
}

// labeledSkills splits the remainder of lines such as "Tech Stack: Go, Redis".
// Only text after the first colon counts.
func labeledSkills(text string) []string {
	var out []string
	for _, match := range skillLabelPattern.FindAllString(text, -1) {
		idx := strings.Index(match, ":")
		if idx < 0 {
			continue
		}
		list := strings.TrimSpace(match[idx+1:])
		for _, token := range skillSeparators.Split(list, -1) {
			token = strings.TrimSpace(token)
			if plausibleSkillLength(token) {
				out = append(out, token)
			}
		}
	}
	return out
}

func plausibleSkillLength(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 1 && n < 30
}
