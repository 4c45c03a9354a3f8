package utils

import "testing"

func TestIsValidSpecies(t *testing.T) {
	for _, opt := range SpeciesOptions {
		if !IsValidSpecies(opt.Value) {
			t.Errorf("固定表里的物种 %s 应判定有效", opt.Value)
		}
	}
	for _, v := range []string{"", "dinosaur", "DOG", "guinea pig"} {
		if IsValidSpecies(v) {
			t.Errorf("%q 不应判定为有效物种", v)
		}
	}
}

func TestSpeciesEmoji(t *testing.T) {
	if got := SpeciesEmoji("dog"); got != "🐕" {
		t.Errorf("dog 的 emoji 不对: %s", got)
	}
	if got := SpeciesEmoji("dinosaur"); got != "🐾" {
		t.Errorf("未知物种应返回通用爪印: %s", got)
	}
}

func TestSpeciesOptionsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, opt := range SpeciesOptions {
		if seen[opt.Value] {
			t.Errorf("物种取值 %s 重复", opt.Value)
		}
		seen[opt.Value] = true
		if opt.Label == "" || opt.Emoji == "" {
			t.Errorf("物种 %s 缺少展示字段", opt.Value)
		}
	}
}
