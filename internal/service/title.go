package service

import (
	"regexp"
	"strings"
)

var (
	weeklyTitle   = regexp.MustCompile(`Weekly Contest (\d+)`)
	biweeklyTitle = regexp.MustCompile(`Biweekly Contest (\d+)`)
	startersTitle = regexp.MustCompile(`(?i)Starters\s+(\d+)(?:\s*\(Div\s*(\d+)\))?`)

	whitespace      = regexp.MustCompile(`\s+`)
	divCombined     = regexp.MustCompile(`Div\s*(\d+)\s*\+\s*(\d+)`)
	divSingle       = regexp.MustCompile(`Div\s+(\d+)`)
	educationalName = regexp.MustCompile(`(Educational Codeforces Round \d+)`)
)

// leetcodeContestID 视频标题 → LeetCode 比赛 slug（weekly-contest-380 / biweekly-contest-120）
func leetcodeContestID(title string) (string, bool) {
	if m := biweeklyTitle.FindStringSubmatch(title); m != nil {
		return "biweekly-contest-" + m[1], true
	}
	if m := weeklyTitle.FindStringSubmatch(title); m != nil {
		return "weekly-contest-" + m[1], true
	}
	return "", false
}

// codeforcesContestName 视频标题 → Codeforces 比赛名称（用于名称匹配）
func codeforcesContestName(title string) (string, bool) {
	name := title
	if i := strings.Index(name, "|"); i >= 0 {
		name = name[:i]
	}
	name = normalizeTitle(name)
	if name == "" {
		return "", false
	}
	name = divCombined.ReplaceAllString(name, "Div. ${1} + Div. ${2}")
	name = divSingle.ReplaceAllString(name, "Div. ${1}")
	if strings.Contains(name, "Educational") && !strings.Contains(name, "Rated") {
		name = educationalName.ReplaceAllString(name, "${1} (Rated for Div. 2)")
	}
	return name, true
}

// codechefContestID 视频标题 → CodeChef 比赛代码（START42）
func codechefContestID(title string) (string, bool) {
	m := startersTitle.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return "START" + m[1], true
}

// normalizeTitle 去首尾空白并合并连续空白
func normalizeTitle(title string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(title), " ")
}
