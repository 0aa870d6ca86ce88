package i18n

// Message keys
const (
	SetupFolderError      = "setup.folder_error"
	SetupDownloadingPrep  = "setup.downloading_prep"
	SetupRetry            = "setup.retry"
	SetupExtracting       = "setup.extracting"
	SetupYtDlpInstallFail = "setup.ytdlp_install_fail"
	SetupFFmpegInstall    = "setup.ffmpeg_install"
	SetupFFmpegFail       = "setup.ffmpeg_install_fail"
	SetupUpdateCheck      = "setup.ytdlp_update_check"
	SetupUpdateResult     = "setup.ytdlp_update_result"
	SetupUpdateFail       = "setup.ytdlp_update_fail"
	SetupFFmpegCheck      = "setup.ffmpeg_check"
	SetupFFmpegOK         = "setup.ffmpeg_ok"
	SetupFFmpegCheckFail  = "setup.ffmpeg_check_fail"
	SetupCompleted        = "setup.completed"

	StatusPending     = "status.pending"
	StatusStarting    = "status.starting"
	StatusDownloading = "status.downloading"
	StatusConverting  = "status.converting"
	StatusCompleted   = "status.completed"
	StatusFailed      = "status.failed"
	StatusStopped     = "status.stopped"
	StatusSkipped     = "status.skipped"

	QueueSummary   = "queue.summary"
	AnalyzeRunning = "analyze.running"
	AnalyzeFound   = "analyze.found"

	PromptURL         = "prompt.url"
	PromptDownloadDir = "prompt.download_dir"
	PromptSelect      = "prompt.select"
	PromptFormat      = "prompt.format"
)

// messages holds translations in the order of Locales: en, ko, ja, zh-CN
var messages = map[string][4]string{
	SetupFolderError: {
		"Could not create the data folder: %v",
		"데이터 폴더를 만들 수 없습니다: %v",
		"データフォルダを作成できません: %v",
		"无法创建数据文件夹: %v",
	},
	SetupDownloadingPrep: {
		"Preparing to download %s...",
		"%s 다운로드 준비 중...",
		"%s のダウンロードを準備中...",
		"正在准备下载 %s...",
	},
	SetupRetry: {
		"Download of %s failed, retrying...",
		"%s 다운로드 실패, 재시도 중...",
		"%s のダウンロードに失敗しました。再試行中...",
		"%s 下载失败，正在重试...",
	},
	SetupExtracting: {
		"Extracting %s...",
		"%s 압축 해제 중...",
		"%s を展開中...",
		"正在解压 %s...",
	},
	SetupYtDlpInstallFail: {
		"Failed to install yt-dlp: %v",
		"yt-dlp 설치 실패: %v",
		"yt-dlp のインストールに失敗しました: %v",
		"yt-dlp 安装失败: %v",
	},
	SetupFFmpegInstall: {
		"ffmpeg not found, installing...",
		"ffmpeg가 없어 설치하는 중...",
		"ffmpeg が見つからないためインストール中...",
		"未找到 ffmpeg，正在安装...",
	},
	SetupFFmpegFail: {
		"Failed to install ffmpeg: %v",
		"ffmpeg 설치 실패: %v",
		"ffmpeg のインストールに失敗しました: %v",
		"ffmpeg 安装失败: %v",
	},
	SetupUpdateCheck: {
		"Checking for yt-dlp updates...",
		"yt-dlp 업데이트 확인 중...",
		"yt-dlp の更新を確認中...",
		"正在检查 yt-dlp 更新...",
	},
	SetupUpdateResult: {
		"yt-dlp: %s",
		"yt-dlp: %s",
		"yt-dlp: %s",
		"yt-dlp: %s",
	},
	SetupUpdateFail: {
		"yt-dlp update check failed: %v",
		"yt-dlp 업데이트 확인 실패: %v",
		"yt-dlp の更新確認に失敗しました: %v",
		"yt-dlp 更新检查失败: %v",
	},
	SetupFFmpegCheck: {
		"Checking ffmpeg...",
		"ffmpeg 확인 중...",
		"ffmpeg を確認中...",
		"正在检查 ffmpeg...",
	},
	SetupFFmpegOK: {
		"ffmpeg: working (%s)",
		"ffmpeg: 정상 작동 (%s)",
		"ffmpeg: 正常に動作しています (%s)",
		"ffmpeg: 工作正常 (%s)",
	},
	SetupFFmpegCheckFail: {
		"ffmpeg check failed: %v",
		"ffmpeg 확인 실패: %v",
		"ffmpeg の確認に失敗しました: %v",
		"ffmpeg 检查失败: %v",
	},
	SetupCompleted: {
		"Ready",
		"준비 완료",
		"準備完了",
		"准备就绪",
	},
	StatusPending:     {"Waiting", "대기 중", "待機中", "等待中"},
	StatusStarting:    {"Starting...", "시작 중...", "開始中...", "正在开始..."},
	StatusDownloading: {"Downloading", "다운로드 중", "ダウンロード中", "下载中"},
	StatusConverting:  {"Converting...", "변환 중...", "変換中...", "转换中..."},
	StatusCompleted:   {"Done", "완료", "完了", "完成"},
	StatusFailed:      {"Failed", "실패", "失敗", "失败"},
	StatusStopped:     {"Stopped", "중단됨", "停止しました", "已停止"},
	StatusSkipped:     {"Skipped", "건너뜀", "スキップ", "已跳过"},
	QueueSummary: {
		"%d completed, %d failed, %d stopped, %d skipped",
		"완료 %d, 실패 %d, 중단 %d, 건너뜀 %d",
		"完了 %d、失敗 %d、停止 %d、スキップ %d",
		"完成 %d，失败 %d，停止 %d，跳过 %d",
	},
	AnalyzeRunning: {
		"Analyzing URL...",
		"URL 분석 중...",
		"URL を解析中...",
		"正在分析 URL...",
	},
	AnalyzeFound: {
		"Found %d item(s) in %s",
		"%[2]s에서 %[1]d개 항목을 찾았습니다",
		"%[2]s で %[1]d 件見つかりました",
		"在 %[2]s 中找到 %[1]d 个项目",
	},
	PromptURL: {
		"Paste a video or playlist URL",
		"동영상 또는 재생목록 URL을 붙여넣으세요",
		"動画または再生リストの URL を貼り付けてください",
		"粘贴视频或播放列表 URL",
	},
	PromptDownloadDir: {
		"Where should downloads be saved?",
		"다운로드를 저장할 폴더를 입력하세요",
		"ダウンロードの保存先を入力してください",
		"下载保存到哪里？",
	},
	PromptSelect: {
		"Select items to download",
		"다운로드할 항목을 선택하세요",
		"ダウンロードする項目を選択してください",
		"选择要下载的项目",
	},
	PromptFormat: {
		"Choose a format",
		"형식을 선택하세요",
		"形式を選択してください",
		"选择格式",
	},
}
