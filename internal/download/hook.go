package download

import "github.com/ytget/media-downloader/internal/model"

// ProgressFunc receives the completion percentage along with the raw tick it was computed from
type ProgressFunc func(percent float64, tick model.ProgressEvent)

// ProgressHook adapts engine ticks to percentage updates. Ticks that are not
// active transfer, or that carry neither an exact nor an estimated total, are
// dropped. A nil fn yields a nil hook so no callback is registered.
func ProgressHook(fn ProgressFunc) func(model.ProgressEvent) {
	if fn == nil {
		return nil
	}
	return func(tick model.ProgressEvent) {
		if percent, ok := tick.Percent(); ok {
			fn(percent, tick)
		}
	}
}
