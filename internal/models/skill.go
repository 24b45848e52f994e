package models

// SkillCategory is the closed set of skill buckets a changed file can fall into.
type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillDatabase SkillCategory = "database"
	SkillDevOps   SkillCategory = "devops"
	SkillML       SkillCategory = "ml"
	SkillDesign   SkillCategory = "design"
	SkillDocs     SkillCategory = "docs"
	SkillOther    SkillCategory = "other"
)

// SkillCategories lists every category in enumeration order.
var SkillCategories = []SkillCategory{
	SkillFrontend,
	SkillBackend,
	SkillDatabase,
	SkillDevOps,
	SkillML,
	SkillDesign,
	SkillDocs,
	SkillOther,
}

var skillLabels = map[SkillCategory]string{
	SkillFrontend: "Frontend",
	SkillBackend:  "Backend",
	SkillDatabase: "Database",
	SkillDevOps:   "DevOps",
	SkillML:       "ML / AI",
	SkillDesign:   "Design",
	SkillDocs:     "Documentation",
	SkillOther:    "Other",
}

// Label returns the display name of the category.
func (s SkillCategory) Label() string {
	if l, ok := skillLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known categories.
func (s SkillCategory) Valid() bool {
	_, ok := skillLabels[s]
	return ok
}

// ContributorSkill is the share of a contributor's changed files that fall
// into one category. Confidence is a percentage in [0, 100].
type ContributorSkill struct {
	Name       SkillCategory `json:"name"`
	Confidence int           `json:"confidence"`
	FileCount  int           `json:"fileCount"`
}

// AssigneeCandidate is a project member considered for a task.
type AssigneeCandidate struct {
	Login            string             `json:"login"`
	Skills           []ContributorSkill `json:"skills"`
	CurrentTaskCount int                `json:"currentTaskCount"`
}

type AssigneeScore struct {
	Login string `json:"login"`
	Score int    `json:"score"`
}
