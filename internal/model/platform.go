package model

// PlatformType 平台类型枚举
type PlatformType string

const (
	PlatformLeetcode   PlatformType = "leetcode"
	PlatformCodeforces PlatformType = "codeforces"
	PlatformCodechef   PlatformType = "codechef"
)

// ContestPhase 原始比赛所属列表
type ContestPhase string

const (
	PhaseUpcoming ContestPhase = "upcoming"
	PhasePast     ContestPhase = "past"
)

// String 实现 fmt.Stringer
func (p PlatformType) String() string { return string(p) }

// SolutionPlatforms 题解匹配的处理顺序
var SolutionPlatforms = []PlatformType{PlatformLeetcode, PlatformCodeforces, PlatformCodechef}
