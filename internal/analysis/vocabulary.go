package analysis

var skills = [...]string{
	"python",
	"java",
	"data analysis",
	"machine learning",
	"c++",
	"sql",
	"web development",
}

var titles = [...]string{
	"software engineer",
	"data scientist",
	"frontend developer",
	"data analyst",
}

// Skills returns a copy of the skill vocabulary in definition order.
func Skills() []string {
	out := make([]string, len(skills))
	copy(out, skills[:])
	return out
}

// Titles returns a copy of the job title vocabulary in definition order.
func Titles() []string {
	out := make([]string, len(titles))
	copy(out, titles[:])
	return out
}
