package analysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywordsVocabularyOrder(t *testing.T) {
	rules := mustRules(t, "zh")

	got := rules.ExtractKeywords("本系统对上传文档进行智能分析和数据处理。")
	want := []string{"文档", "系统", "智能", "处理", "分析", "数据"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractKeywords() = %v, want %v", got, want)
	}
}

func TestExtractKeywordsFallback(t *testing.T) {
	rules := mustRules(t, "zh")

	got := rules.ExtractKeywords("完全无关的句子。")
	if !reflect.DeepEqual(got, []string{"文本", "内容"}) {
		t.Fatalf("expected fallback keywords, got %v", got)
	}
}

func TestExtractKeywordsCaseInsensitive(t *testing.T) {
	rules := mustRules(t, "en")

	got := rules.ExtractKeywords("The SYSTEM will Parse every Document.")
	for _, want := range []string{"document", "parse", "system"} {
		found := false
		for _, kw := range got {
			if kw == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q in keywords %v", want, got)
		}
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello world", 2},
		{"你好世界", 4},
		{"文档 parsing 系统 v2", 6},
		{"one,two;three", 3},
	}
	for _, tc := range cases {
		if got := countWords(tc.text); got != tc.want {
			t.Fatalf("countWords(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "简短标题"
	if got := truncateTitle(short); got != short {
		t.Fatalf("short title must not change, got %q", got)
	}

	long := strings.Repeat("长", 150)
	got := truncateTitle(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len([]rune(got)) != 103 {
		t.Fatalf("expected 100 runes plus ellipsis, got %d", len([]rune(got)))
	}
}

func TestClassifyLinePriorities(t *testing.T) {
	rules := mustRules(t, "zh")

	cases := []struct {
		line    string
		special bool
		level   int
	}{
		{"第一章 总则", true, 1},
		{"第１２章 附录", true, 1},
		{"适用范围：", true, 2},
		{"Scope:", true, 2},
		{"1、第一项", true, 3},
		{"2) 第二项", true, 3},
		{"联系电话 010-12345678", true, 2},
		{"普通的一行正文。", false, 4},
	}
	for _, tc := range cases {
		class := rules.classifyLine(tc.line)
		if class.special != tc.special || class.level != tc.level {
			t.Fatalf("classifyLine(%q) = {special:%v level:%d}, want {special:%v level:%d}",
				tc.line, class.special, class.level, tc.special, tc.level)
		}
	}
}

func TestClassifyLineChapterBeatsColon(t *testing.T) {
	rules := mustRules(t, "zh")

	class := rules.classifyLine("第二章 联系方式：")
	if class.level != 1 {
		t.Fatalf("chapter cue must beat trailing colon, got level %d", class.level)
	}
}
