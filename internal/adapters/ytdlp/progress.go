package ytdlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	percentRe     = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)
	speedRe       = regexp.MustCompile(`\bat\s+(\S+/s)`)
	etaRe         = regexp.MustCompile(`\bETA\s+(\S+)`)
	stageRe       = regexp.MustCompile(`^\[(ExtractAudio|Merger|EmbedThumbnail|Metadata)\]`)
	destinationRe = regexp.MustCompile(`^\[(?:download|ExtractAudio)\] Destination: (.+)$`)
	mergeRe       = regexp.MustCompile(`^\[Merger\] Merging formats into "(.+)"$`)
	alreadyRe     = regexp.MustCompile(`^\[download\] (.+) has already been downloaded`)
)

// outputLine is what a single stdout line from yt-dlp told us
type outputLine struct {
	IsProgress  bool
	Percent     float64
	Speed       string
	ETA         string
	Stage       string // post-processing step, e.g. ExtractAudio
	Destination string
}

// parseLine interprets one line printed with --newline --progress
func parseLine(line string) outputLine {
	line = strings.TrimRight(line, "\r\n")
	var out outputLine

	if m := percentRe.FindStringSubmatch(line); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.IsProgress = true
			out.Percent = pct
			if s := speedRe.FindStringSubmatch(line); s != nil {
				out.Speed = s[1]
			}
			if e := etaRe.FindStringSubmatch(line); e != nil && e[1] != "Unknown" {
				out.ETA = e[1]
			}
		}
	}

	if m := stageRe.FindStringSubmatch(line); m != nil {
		out.Stage = m[1]
	}

	switch {
	case destinationRe.MatchString(line):
		out.Destination = destinationRe.FindStringSubmatch(line)[1]
	case mergeRe.MatchString(line):
		out.Destination = mergeRe.FindStringSubmatch(line)[1]
	case alreadyRe.MatchString(line):
		out.Destination = alreadyRe.FindStringSubmatch(line)[1]
	}

	return out
}
