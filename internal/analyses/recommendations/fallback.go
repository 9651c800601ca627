package recommendations

import "strings"

var (
	dataCourses = []string{
		"Data Science Specialization (Coursera/edX)",
		"Machine Learning (Coursera/edX)",
		"Deep Learning Specialization (Coursera)",
		"Big Data Technologies (Cloud Provider Certifications)",
		"Statistical Modeling and Inference",
		"Data Visualization with Tableau/Power BI",
	}
	engineeringCourses = []string{
		"Full Stack Web Development (Udemy/Coursera)",
		"Cloud Certifications (AWS/Azure/GCP)",
		"DevOps and CI/CD Pipelines",
		"Software Architecture and Design Patterns",
		"Agile and Scrum Methodologies",
		"Mobile App Development",
	}
	securityCourses = []string{
		"Certified Information Systems Security Professional (CISSP)",
		"Certified Ethical Hacker (CEH)",
		"CompTIA Security+",
		"Offensive Security Certified Professional (OSCP)",
		"Cloud Security Certifications",
		"Security Operations and Incident Response",
	}
	genericCourses = []string{
		"LinkedIn Learning - Professional Skills Development",
		"Coursera - Career Development Specialization",
		"Udemy - Job Interview Skills Training",
		"Project Management Professional (PMP)",
		"Leadership and Management Skills",
		"Technical Writing and Communication",
	}
)

// FallbackCourses returns a fixed course list keyed on words in the job role.
// It is used when the analysis suggested no courses.
func FallbackCourses(jobRole string) []string {
	role := strings.ToLower(jobRole)
	var list []string
	switch {
	case containsAny(role, "data", "scientist", "analyst"):
		list = dataCourses
	case containsAny(role, "developer", "engineer", "programming"):
		list = engineeringCourses
	case containsAny(role, "security", "cyber"):
		list = securityCourses
	default:
		list = genericCourses
	}
	return append([]string(nil), list...)
}
