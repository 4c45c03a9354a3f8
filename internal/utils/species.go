package utils

// SpeciesOption 物种选项，和移动端选择器保持同一份取值
type SpeciesOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// SpeciesOptions 固定物种表（新增物种要同步移动端）
var SpeciesOptions = []SpeciesOption{
	{Value: "dog", Label: "Dog", Emoji: "🐕"},
	{Value: "cat", Label: "Cat", Emoji: "🐈"},
	{Value: "bird", Label: "Bird", Emoji: "🐦"},
	{Value: "rabbit", Label: "Rabbit", Emoji: "🐰"},
	{Value: "hamster", Label: "Hamster", Emoji: "🐹"},
	{Value: "guinea_pig", Label: "Guinea Pig", Emoji: "🐹"},
	{Value: "fish", Label: "Fish", Emoji: "🐟"},
	{Value: "reptile", Label: "Reptile", Emoji: "🦎"},
	{Value: "amphibian", Label: "Amphibian", Emoji: "🐸"},
	{Value: "horse", Label: "Horse", Emoji: "🐴"},
	{Value: "farm", Label: "Farm", Emoji: "🐄"},
	{Value: "exotic", Label: "Exotic", Emoji: "🦜"},
	{Value: "other", Label: "Other", Emoji: "🐾"},
}

// IsValidSpecies 判断物种取值是否在固定表里
func IsValidSpecies(v string) bool {
	for _, opt := range SpeciesOptions {
		if opt.Value == v {
			return true
		}
	}
	return false
}

// SpeciesEmoji 返回物种对应 emoji，未知物种给通用爪印
func SpeciesEmoji(v string) string {
	for _, opt := range SpeciesOptions {
		if opt.Value == v {
			return opt.Emoji
		}
	}
	return "🐾"
}
