package scholar

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/stackmatch/internal/skills"
	"github.com/jonathan/stackmatch/internal/types"
)

type mapping struct {
	key    string
	skills []string
}

// interestMappings maps research-interest keywords to technology bundles.
var interestMappings = []mapping{
	{"machine learning", []string{"Machine Learning", "Python", "TensorFlow", "Scikit-learn", "PyTorch"}},
	{"artificial intelligence", []string{"Artificial Intelligence", "Python", "Machine Learning", "Deep Learning"}},
	{"deep learning", []string{"Deep Learning", "TensorFlow", "PyTorch", "Neural Networks", "Python"}},
	{"computer vision", []string{"Computer Vision", "OpenCV", "Python", "Image Processing", "Deep Learning"}},
	{"natural language processing", []string{"NLP", "Natural Language Processing", "Python", "NLTK", "spaCy"}},
	{"data science", []string{"Data Science", "Python", "Pandas", "NumPy", "Matplotlib", "Jupyter"}},
	{"data mining", []string{"Data Mining", "Python", "Scikit-learn", "Data Analysis", "Statistics"}},
	{"big data", []string{"Big Data", "Apache Spark", "Hadoop", "Python", "Scala", "Data Processing"}},
	{"cloud computing", []string{"Cloud Computing", "AWS", "Azure", "GCP", "Docker", "Kubernetes"}},
	{"distributed systems", []string{"Distributed Systems", "Microservices", "Docker", "Kubernetes", "System Design"}},
	{"database", []string{"Database", "SQL", "MongoDB", "PostgreSQL", "Data Modeling"}},
	{"software engineering", []string{"Software Engineering", "Programming", "System Design", "Software Architecture"}},
	{"web development", []string{"Web Development", "JavaScript", "HTML", "CSS", "React.js", "Node.js"}},
	{"mobile computing", []string{"Mobile Development", "Android", "iOS", "React Native", "Flutter"}},
	{"cybersecurity", []string{"Cybersecurity", "Security", "Networking", "Penetration Testing"}},
	{"blockchain", []string{"Blockchain", "Cryptocurrency", "Smart Contracts", "Ethereum", "Web3"}},
	{"robotics", []string{"Robotics", "Python", "ROS", "Computer Vision", "Machine Learning"}},
	{"iot", []string{"IoT", "Internet of Things", "Arduino", "Raspberry Pi", "Sensors", "MQTT"}},
	{"bioinformatics", []string{"Bioinformatics", "Python", "R", "Data Analysis", "Machine Learning"}},
	{"human computer interaction", []string{"HCI", "UI/UX", "User Experience", "Frontend Development"}},
	{"computer graphics", []string{"Computer Graphics", "3D Graphics", "OpenGL", "Unity", "Visualization"}},
}

// publicationKeywords are technology names looked for in titles and venues.
var publicationKeywords = []string{
	"javascript", "python", "java", "react", "tensorflow", "pytorch", "opencv",
	"mongodb", "sql", "aws", "docker", "kubernetes", "blockchain", "ethereum",
	"android", "ios", "flutter", "unity", "nodejs", "angular", "vue",
}

// venueMappings maps conference and journal names to domain bundles.
var venueMappings = []mapping{
	{"ieee", []string{"Research", "Engineering", "Technology"}},
	{"acm", []string{"Computer Science", "Programming", "Software Engineering"}},
	{"springer", []string{"Research", "Academic Research"}},
	{"neurips", []string{"Machine Learning", "Deep Learning", "AI", "Python"}},
	{"icml", []string{"Machine Learning", "Python", "Research"}},
	{"iccv", []string{"Computer Vision", "OpenCV", "Deep Learning", "Python"}},
	{"cvpr", []string{"Computer Vision", "Image Processing", "Machine Learning"}},
	{"emnlp", []string{"NLP", "Natural Language Processing", "Python"}},
	{"www", []string{"Web Development", "Internet Technologies", "Web Standards"}},
	{"chi", []string{"HCI", "User Experience", "UI Design"}},
	{"siggraph", []string{"Computer Graphics", "3D Graphics", "Visualization"}},
	{"vldb", []string{"Database", "Big Data", "SQL", "Data Management"}},
	{"sigmod", []string{"Database Systems", "SQL", "Data Processing"}},
	{"isca", []string{"Computer Architecture", "System Design", "Hardware"}},
	{"osdi", []string{"Operating Systems", "Distributed Systems", "System Programming"}},
	{"nsdi", []string{"Networking", "Distributed Systems", "Network Programming"}},
	{"usenix", []string{"Systems", "Security", "Operating Systems"}},
	{"ccs", []string{"Cybersecurity", "Security", "Cryptography"}},
	{"oakland", []string{"Security", "Privacy", "Cybersecurity"}},
}

type rule struct {
	canonical string
	match     func(lower string) bool
}

func has(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func is(word string) func(string) bool {
	return func(s string) bool { return s == word }
}

// standardizationRules is the research-profile table; first match wins.
var standardizationRules = []rule{
	{"JavaScript", func(s string) bool { return strings.Contains(s, "javascript") || s == "js" }},
	{"Python", has("python")},
	{"Machine Learning", has("machine learning")},
	{"Deep Learning", has("deep learning")},
	{"TensorFlow", has("tensorflow")},
	{"PyTorch", has("pytorch")},
	{"OpenCV", has("opencv")},
	{"React.js", has("react")},
	{"Node.js", has("node")},
	{"MongoDB", has("mongodb")},
	{"AWS", has("aws")},
	{"Docker", has("docker")},
	{"Kubernetes", has("kubernetes")},
	{"SQL", is("sql")},
	{"iOS", is("ios")},
	{"Vue.js", is("vue")},
}

// StandardizeSkill canonicalizes a research-derived skill. Names with no rule
// keep their own capitalization; all-lowercase names get a leading capital.
func StandardizeSkill(skill string) string {
	skill = strings.TrimSpace(skill)
	lower := strings.ToLower(skill)
	for _, r := range standardizationRules {
		if r.match(lower) {
			return r.canonical
		}
	}
	if skill != lower {
		return skill
	}
	first, size := utf8.DecodeRuneInString(skill)
	return string(unicode.ToUpper(first)) + skill[size:]
}

// DeriveSkills builds the skill list for a profile from its research interests,
// publication titles and venues.
func DeriveSkills(profile *types.ScholarProfile) []string {
	var candidates []string

	for _, interest := range profile.ResearchInterests {
		lower := strings.ToLower(interest)
		for _, m := range interestMappings {
			if strings.Contains(lower, m.key) {
				candidates = append(candidates, m.skills...)
			}
		}
		candidates = append(candidates, interest)
	}

	for _, pub := range profile.Publications {
		title := strings.ToLower(pub.Title)
		venue := strings.ToLower(pub.Venue)

		for _, kw := range publicationKeywords {
			if strings.Contains(title, kw) || strings.Contains(venue, kw) {
				candidates = append(candidates, kw)
			}
		}

		for _, m := range venueMappings {
			if strings.Contains(venue, m.key) {
				candidates = append(candidates, m.skills...)
			}
		}
	}

	standardized := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if n := utf8.RuneCountInString(c); n < 2 || n >= 50 {
			continue
		}
		standardized = append(standardized, StandardizeSkill(c))
	}

	return skills.Dedupe(standardized)
}
