// Package notify is the transient-message sink used for guard-rail feedback.
package notify

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 2 * time.Second

const currentKey = "current"

// Notices for features that are not open yet.
const (
	CheckInNotice  = "签到功能即将开放"
	HomeworkNotice = "作业功能即将开放"
	EvalNotice     = "评价功能即将开放"
)

// Notices raised by material rows.
const (
	PreviewNotice  = "已开始预览"
	FavoriteNotice = "已收藏"
	DownloadNotice = "文件已加入下载队列"
)

// Notifier shows a short-lived message. It is fire-and-forget.
type Notifier interface {
	Notify(msg string)
}

// CacheNotifier keeps the latest message in an expiring cache entry.
type CacheNotifier struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCacheNotifier creates a notifier whose messages expire after ttl.
func NewCacheNotifier(ttl time.Duration) *CacheNotifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CacheNotifier{
		cache: cache.New(ttl, ttl*5),
		ttl:   ttl,
	}
}

// Notify replaces the visible message.
func (n *CacheNotifier) Notify(msg string) {
	n.cache.Set(currentKey, msg, n.ttl)
}

// Current returns the visible message, if it has not expired.
func (n *CacheNotifier) Current() (string, bool) {
	v, ok := n.cache.Get(currentKey)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Dismiss hides the current message.
func (n *CacheNotifier) Dismiss() {
	n.cache.Delete(currentKey)
}

// TTL returns the display duration.
func (n *CacheNotifier) TTL() time.Duration {
	return n.ttl
}

// Recorder captures every message. Used in tests and by the one-shot CLI.
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, msg)
}

// Count returns the number of recorded messages.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Messages)
}

// Tee fans a message out to several notifiers.
type Tee []Notifier

func (t Tee) Notify(msg string) {
	for _, n := range t {
		if n != nil {
			n.Notify(msg)
		}
	}
}
