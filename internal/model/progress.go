package model

// ProgressStatus is the engine-reported phase of a progress tick
type ProgressStatus string

const (
	ProgressStatusStarting       ProgressStatus = "starting"
	ProgressStatusDownloading    ProgressStatus = "downloading"
	ProgressStatusPostProcessing ProgressStatus = "post_processing"
	ProgressStatusFinished       ProgressStatus = "finished"
	ProgressStatusError          ProgressStatus = "error"
)

// ProgressEvent is a raw tick reported by the fetch engine during transfer
type ProgressEvent struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64 // exact size, 0 if unknown
	TotalBytesEstimate int64 // estimated size, 0 if unknown
	Filename           string
}

// Total returns the exact byte count if known, otherwise the estimate
func (e ProgressEvent) Total() int64 {
	if e.TotalBytes > 0 {
		return e.TotalBytes
	}
	if e.TotalBytesEstimate > 0 {
		return e.TotalBytesEstimate
	}
	return 0
}

// Percent returns the completion percentage in [0,100]. The second value is
// false for ticks that are not active transfer or that carry no total.
func (e ProgressEvent) Percent() (float64, bool) {
	if e.Status != ProgressStatusDownloading {
		return 0, false
	}
	total := e.Total()
	if total <= 0 {
		return 0, false
	}
	percent := float64(e.DownloadedBytes) / float64(total) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
