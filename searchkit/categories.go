package searchkit

import (
	_ "embed"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// CategoryDescriptor carries the display metadata for one result category.
// Icon and Color are style tokens interpreted by the rendering layer.
type CategoryDescriptor struct {
	Key   string `yaml:"-" json:"key"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
}

// Default descriptor tokens for categories the static mapping doesn't know.
const (
	defaultIcon  = "search"
	defaultColor = "gray"
)

var (
	categoriesOnce sync.Once
	categoryMap    map[string]CategoryDescriptor
	titleCaser     = cases.Title(language.English)
)

func loadCategories() {
	raw := make(map[string]CategoryDescriptor)
	if err := yaml.Unmarshal(categoriesYAML, &raw); err != nil {
		// The mapping is compiled in; a parse failure is a build defect.
		panic("searchkit: invalid embedded category mapping: " + err.Error())
	}
	categoryMap = make(map[string]CategoryDescriptor, len(raw))
	for key, desc := range raw {
		desc.Key = key
		categoryMap[key] = desc
	}
}

// Classify maps a category key to its display descriptor. It is total:
// unknown keys resolve to a generic descriptor with the re-titled key as
// label, never an error. The mapping is static, so the same key always
// yields the same descriptor within a process lifetime.
func Classify(key string) CategoryDescriptor {
	categoriesOnce.Do(loadCategories)

	if desc, ok := categoryMap[key]; ok {
		return desc
	}
	return CategoryDescriptor{
		Key:   key,
		Label: titleCaser.String(key),
		Icon:  defaultIcon,
		Color: defaultColor,
	}
}
