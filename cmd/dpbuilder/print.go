package main

import (
	"fmt"

	"github.com/sgilissen/DemoscenePackBuilder/internal/pipeline"
	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

func printProductionStart(i, total int, p demozoo.Production) {
	finishProgress()
	byline := ""
	if author := p.Author(); author != "" {
		byline = " by " + author
	}
	fmt.Printf("[%d of %d] Downloading %s%s\n", i, total, p.Title, byline)
}

// progressOpen tracks whether the progress line still needs a closing
// newline (unknown total, or a download that died mid-body).
var progressOpen bool

func printProgress(written, total int64) {
	fmt.Printf("\r  %s", progressLine(written, total))
	progressOpen = true
	if total > 0 && written >= total {
		fmt.Println()
		progressOpen = false
	}
}

func finishProgress() {
	if progressOpen {
		fmt.Println()
		progressOpen = false
	}
}

func progressLine(written, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%s downloaded", formatSize(written))
	}
	percent := written * 100 / total
	if percent > 100 {
		percent = 100
	}
	return fmt.Sprintf("%3d%% of %s", percent, formatSize(total))
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func printReport(r *pipeline.Report, outDir string) {
	finishProgress()
	fmt.Println()
	fmt.Printf("Done: %d downloaded, %d failed, %d skipped\n",
		len(r.Downloaded), len(r.Failed), len(r.Skipped))

	if len(r.Failed) > 0 {
		fmt.Println("\nFailed:")
		for _, res := range r.Failed {
			fmt.Printf("  - %s: %v\n", res.Production.Title, res.Err)
		}
	}
	if len(r.Skipped) > 0 {
		fmt.Println("\nSkipped (no usable download link):")
		for _, res := range r.Skipped {
			fmt.Printf("  - %s (%s)\n", res.Production.Title, res.Production.DemozooURL)
		}
	}
	if len(r.Downloaded) > 0 {
		fmt.Printf("\nPack written to %s\n", outDir)
	}
}
