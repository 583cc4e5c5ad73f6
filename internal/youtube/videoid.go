package youtube

import "regexp"

const videoIDLength = 11

var (
	videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)
	videoIDPattern  = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

// IsVideoURL 是否为 youtube.com / youtu.be 链接
func IsVideoURL(raw string) bool {
	return videoURLPattern.MatchString(raw)
}

// ExtractVideoID 从视频链接中提取 11 位视频ID
func ExtractVideoID(raw string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(raw)
	if m == nil || len(m[2]) != videoIDLength {
		return "", false
	}
	return m[2], true
}
