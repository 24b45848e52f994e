// Package skills classifies changed files into skill categories and builds
// per-contributor skill vectors from them.
package skills

import (
	"math"
	"sort"
	"strings"

	"github.com/Kamar-Folarin/repo-insights/internal/models"
)

// extensionSkills maps a lowercased file extension to its category.
// .ts and .js count as frontend.
var extensionSkills = map[string]models.SkillCategory{
	".tsx": models.SkillFrontend, ".jsx": models.SkillFrontend, ".css": models.SkillFrontend, ".scss": models.SkillFrontend,
	".html": models.SkillFrontend, ".vue": models.SkillFrontend, ".svelte": models.SkillFrontend, ".less": models.SkillFrontend,
	".ts": models.SkillFrontend, ".js": models.SkillFrontend,

	".py": models.SkillBackend, ".go": models.SkillBackend, ".java": models.SkillBackend, ".rs": models.SkillBackend,
	".rb": models.SkillBackend, ".php": models.SkillBackend, ".cs": models.SkillBackend, ".cpp": models.SkillBackend,
	".c": models.SkillBackend,

	".sql": models.SkillDatabase, ".prisma": models.SkillDatabase, ".migration": models.SkillDatabase,

	".yml": models.SkillDevOps, ".yaml": models.SkillDevOps, ".dockerfile": models.SkillDevOps, ".tf": models.SkillDevOps,
	".sh": models.SkillDevOps, ".toml": models.SkillDevOps,

	".ipynb": models.SkillML, ".pkl": models.SkillML, ".h5": models.SkillML, ".onnx": models.SkillML,

	".figma": models.SkillDesign, ".sketch": models.SkillDesign, ".svg": models.SkillDesign, ".psd": models.SkillDesign,

	".md": models.SkillDocs, ".txt": models.SkillDocs, ".rst": models.SkillDocs,
}

// Classify returns the category of a single path. Paths without an
// extension or with an unknown one are "other". A bare "Dockerfile" has no
// extension and is "other"; only names like "build.dockerfile" reach devops.
func Classify(path string) models.SkillCategory {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return models.SkillOther
	}
	if skill, ok := extensionSkills[strings.ToLower(path[i:])]; ok {
		return skill
	}
	return models.SkillOther
}

// DetectFromFiles tallies files per category. Confidence is the rounded
// percentage of files in the category; only non-empty categories are
// returned, highest confidence first, ties in enumeration order.
func DetectFromFiles(files []string) []models.ContributorSkill {
	counts := make(map[models.SkillCategory]int, len(models.SkillCategories))
	for _, f := range files {
		counts[Classify(f)]++
	}

	total := len(files)
	if total == 0 {
		total = 1
	}

	skills := make([]models.ContributorSkill, 0, len(counts))
	for _, category := range models.SkillCategories {
		n := counts[category]
		if n == 0 {
			continue
		}
		skills = append(skills, models.ContributorSkill{
			Name:       category,
			Confidence: int(math.Round(float64(n) / float64(total) * 100)),
			FileCount:  n,
		})
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Confidence > skills[j].Confidence
	})
	return skills
}

// Aggregate attaches to every contributor the detailed commits they
// authored and the skills detected from those commits' files. The input
// slice is not modified.
func Aggregate(contributors []models.Contributor, detailed []models.Commit) []models.Contributor {
	byAuthor := make(map[string][]models.Commit)
	for _, c := range detailed {
		byAuthor[c.Author] = append(byAuthor[c.Author], c)
	}

	out := make([]models.Contributor, 0, len(contributors))
	for _, contributor := range contributors {
		commits := byAuthor[contributor.Login]
		if commits == nil {
			commits = []models.Commit{}
		}

		var files []string
		for _, c := range commits {
			files = append(files, c.FilesChanged...)
		}

		contributor.Commits = commits
		contributor.Skills = DetectFromFiles(files)
		out = append(out, contributor)
	}
	return out
}

// Find returns the skill entry for category, if present.
func Find(skills []models.ContributorSkill, category models.SkillCategory) (models.ContributorSkill, bool) {
	for _, s := range skills {
		if s.Name == category {
			return s, true
		}
	}
	return models.ContributorSkill{}, false
}
