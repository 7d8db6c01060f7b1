package distribution

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ivlev/leet2video/internal/episode"
)

const (
	leetcodeBase   = "https://leetcode.com/problems/"
	leetcodeCNBase = "https://leetcode.cn/problems/"
)

// DeepLinks returns the problem URLs on leetcode.com and leetcode.cn
func DeepLinks(data episode.Data) map[string]string {
	slug := data.Slug()
	return map[string]string{
		"leetcode":    leetcodeBase + slug + "/",
		"leetcode_cn": leetcodeCNBase + slug + "/",
	}
}

// YouTubeDescription builds the video description with deep links and metadata
func YouTubeDescription(data episode.Data) string {
	links := DeepLinks(data)

	objectives := make([]string, 0)
	for _, obj := range data.Strings("objectives") {
		objectives = append(objectives, "- "+obj)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s | LeetCode %s Problem Explained\n\n", data.Title(), data.Difficulty())
	fmt.Fprintf(&sb, "Pattern: %s\n\n", strings.Join(data.Strings("pattern"), ", "))
	fmt.Fprintf(&sb, "Learning Objectives:\n%s\n\n", strings.Join(objectives, "\n"))
	fmt.Fprintf(&sb, "🔗 Open on LeetCode: %s\n", links["leetcode"])
	fmt.Fprintf(&sb, "🔗 LeetCode CN: %s\n\n", links["leetcode_cn"])
	sb.WriteString("Subscribe for more LeetCode explainers! 🚀\n\n")
	sb.WriteString("#LeetCode #Algorithm #DataStructures #CodingInterview")

	return strings.TrimSpace(sb.String())
}

// Chapter is a YouTube chapter marker
type Chapter struct {
	Time  int    `json:"time"`
	Title string `json:"title"`
}

// Chapters builds chapter markers from storyboard entries with "time" (MM:SS) and "visual".
// Entries with a malformed time are skipped.
func Chapters(data episode.Data) []Chapter {
	var chapters []Chapter
	for _, item := range data.Storyboard() {
		timeStr, ok := item["time"].(string)
		if !ok {
			continue
		}
		visual, ok := item["visual"].(string)
		if !ok {
			continue
		}
		seconds, err := ParseClock(timeStr)
		if err != nil {
			continue
		}
		chapters = append(chapters, Chapter{Time: seconds, Title: visual})
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Time < chapters[j].Time
	})
	return chapters
}

// ParseClock parses MM:SS into seconds
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected MM:SS", s)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return minutes*60 + seconds, nil
}

// FormatChapters renders chapters as description lines ("1:05 Title")
func FormatChapters(chapters []Chapter) string {
	lines := make([]string, len(chapters))
	for i, ch := range chapters {
		lines[i] = fmt.Sprintf("%d:%02d %s", ch.Time/60, ch.Time%60, ch.Title)
	}
	return strings.Join(lines, "\n")
}
