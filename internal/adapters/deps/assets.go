package deps

import (
	"fmt"

	"github.com/devbush/ytgrab/internal/domain"
)

// ArchiveKind tells how a downloaded file is unpacked
type ArchiveKind string

const (
	ArchiveNone  ArchiveKind = ""
	ArchiveZip   ArchiveKind = "zip"
	ArchiveTarXz ArchiveKind = "tar.xz"
	Archive7z    ArchiveKind = "7z"
)

// Source is one place a tool can be downloaded from
type Source struct {
	URL     string
	Archive ArchiveKind
	// ChecksumURL points at a sha256sum style file listing FileName.
	// Empty means the source publishes no checksums.
	ChecksumURL string
	FileName    string
}

// Asset lists the sources for a tool, primary first
type Asset struct {
	Tool    domain.Tool
	Sources []Source
}

const (
	ytDlpRelease = "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"
	btbnRelease  = "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/"
)

func ytDlpSource(name string) Source {
	return Source{
		URL:         ytDlpRelease + name,
		ChecksumURL: ytDlpRelease + "SHA2-256SUMS",
		FileName:    name,
	}
}

func btbnSource(name string, kind ArchiveKind) Source {
	return Source{
		URL:         btbnRelease + name,
		Archive:     kind,
		ChecksumURL: btbnRelease + "checksums.sha256",
		FileName:    name,
	}
}

// AssetFor returns the download sources for tool on goos/goarch
func AssetFor(tool domain.Tool, goos, goarch string) (Asset, error) {
	platform := goos + "/" + goarch
	asset := Asset{Tool: tool}

	switch tool {
	case domain.ToolYtDlp:
		switch platform {
		case "linux/amd64":
			asset.Sources = []Source{ytDlpSource("yt-dlp")}
		case "linux/arm64":
			asset.Sources = []Source{ytDlpSource("yt-dlp_linux_aarch64")}
		case "darwin/amd64", "darwin/arm64":
			asset.Sources = []Source{ytDlpSource("yt-dlp_macos")}
		case "windows/amd64":
			asset.Sources = []Source{ytDlpSource("yt-dlp.exe")}
		}
	case domain.ToolFFmpeg:
		switch platform {
		case "linux/amd64":
			asset.Sources = []Source{btbnSource("ffmpeg-master-latest-linux64-gpl.tar.xz", ArchiveTarXz)}
		case "linux/arm64":
			asset.Sources = []Source{btbnSource("ffmpeg-master-latest-linuxarm64-gpl.tar.xz", ArchiveTarXz)}
		case "windows/amd64":
			asset.Sources = []Source{
				btbnSource("ffmpeg-master-latest-win64-gpl.zip", ArchiveZip),
				{URL: "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.7z", Archive: Archive7z},
			}
		case "darwin/amd64":
			asset.Sources = []Source{{URL: "https://evermeet.cx/ffmpeg/getrelease/ffmpeg/zip", Archive: ArchiveZip}}
		case "darwin/arm64":
			asset.Sources = []Source{{URL: "https://www.osxexperts.net/ffmpeg7arm.zip", Archive: ArchiveZip}}
		}
	default:
		return asset, fmt.Errorf("unknown tool %q", tool)
	}

	if len(asset.Sources) == 0 {
		return asset, fmt.Errorf("%w: %s for %s", domain.ErrUnsupportedPlatform, tool, platform)
	}
	return asset, nil
}
