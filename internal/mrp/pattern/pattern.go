// Package pattern 将用户输入的模糊查询编译为SQL LIKE模式。
// `*` 是唯一支持的通配符；最后一段始终按前缀匹配处理。
package pattern

import (
	"regexp"
	"strings"
)

// LikePatterns 编译结果。Standard 针对 LOWER(col) 匹配；
// Collapsed 针对去掉连字符和空格后的列匹配（AB-123 可命中 AB 123 / AB123），
// 为空字符串表示无折叠变体。两者均需配合 ESCAPE '\' 使用。
type LikePatterns struct {
	Standard  string
	Collapsed string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// escapeReplacer 转义LIKE元字符，反斜杠在前
var escapeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Escape 转义段内的LIKE元字符
func Escape(segment string) string {
	return escapeReplacer.Replace(segment)
}

// Compile 编译查询串。空白输入返回nil，表示不产生谓词。
func Compile(raw string) *LikePatterns {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = whitespaceRun.ReplaceAllString(norm, " ")
	if norm == "" {
		return nil
	}

	leading := strings.HasPrefix(norm, "*")

	var segments []string
	for _, seg := range strings.Split(norm, "*") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	p := &LikePatterns{Standard: build(segments, leading)}

	// 折叠变体：逐段去掉连字符与空格，全部折叠为空则省略
	var collapsed []string
	for _, seg := range segments {
		c := strings.ReplaceAll(strings.ReplaceAll(seg, "-", ""), " ", "")
		if c != "" {
			collapsed = append(collapsed, c)
		}
	}
	if len(collapsed) > 0 || len(segments) == 0 {
		p.Collapsed = build(collapsed, leading)
	}

	return p
}

// build 组装LIKE模式：段间以%连接，末尾始终隐含%，
// 首段前是否加%取决于原始输入是否以*开头。纯*输入得到全匹配%。
func build(segments []string, leading bool) string {
	if len(segments) == 0 {
		return "%"
	}
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = Escape(seg)
	}
	p := strings.Join(escaped, "%") + "%"
	if leading {
		p = "%" + p
	}
	return p
}
