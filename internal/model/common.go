package model

// PlatformRawContest 所有平台的原始比赛通用结构
type PlatformRawContest struct {
	Platform PlatformType // 来源平台
	ID       string       // 平台原生比赛ID/slug
	Phase    ContestPhase // upcoming/past
	Data     interface{}  // 平台原生数据（LeetcodeContest/CodeforcesContest/CodechefContest）
}

// LeetcodeContest LeetCode GraphQL 返回的比赛
type LeetcodeContest struct {
	Title           string `json:"title"`           // 比赛标题（Weekly Contest 380）
	TitleSlug       string `json:"titleSlug"`       // weekly-contest-380
	StartTime       int64  `json:"startTime"`       // 开始时间（秒级时间戳）
	OriginStartTime int64  `json:"originStartTime"` // 原定开始时间
}

// LeetcodeGraphQLResponse GraphQL 根响应
type LeetcodeGraphQLResponse struct {
	Data struct {
		UpcomingContests []LeetcodeContest `json:"upcomingContests"`
		PastContests     *struct {
			PageNum     int               `json:"pageNum"`
			CurrentPage int               `json:"currentPage"`
			TotalNum    int               `json:"totalNum"`
			NumPerPage  int               `json:"numPerPage"`
			Data        []LeetcodeContest `json:"data"`
		} `json:"pastContests"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// CodeforcesContest contest.list 中的单条比赛
type CodeforcesContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`  // CF/IOI/ICPC
	Phase            string `json:"phase"` // BEFORE/CODING/FINISHED...
	StartTimeSeconds int64  `json:"startTimeSeconds"`
	DurationSeconds  int64  `json:"durationSeconds"`
}

// CodeforcesResponse contest.list 根响应
type CodeforcesResponse struct {
	Status  string              `json:"status"` // OK/FAILED
	Comment string              `json:"comment"`
	Result  []CodeforcesContest `json:"result"`
}

// CodechefContest CodeChef 比赛列表中的单条比赛
type CodechefContest struct {
	ContestCode         string `json:"contest_code"`
	ContestName         string `json:"contest_name"`
	ContestStartDate    string `json:"contest_start_date"`     // "06 Mar 2024  20:00:00"（IST）
	ContestEndDate      string `json:"contest_end_date"`       // 同上
	ContestStartDateISO string `json:"contest_start_date_iso"` // RFC3339
	ContestEndDateISO   string `json:"contest_end_date_iso"`   // RFC3339
	ContestDuration     string `json:"contest_duration"`       // 分钟，仅供参考
}

// CodechefResponse CodeChef 根响应
type CodechefResponse struct {
	Status         string            `json:"status"` // success/failure
	Message        string            `json:"message"`
	FutureContests []CodechefContest `json:"future_contests"`
	PastContests   []CodechefContest `json:"past_contests"`
}
