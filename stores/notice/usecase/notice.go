package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/notice"
)

const defaultCapacity = 50

type impl struct {
	mu       sync.Mutex
	notices  []*notice.Notice
	capacity int
	now      func() time.Time
}

// New returns an in-memory notice board keeping the latest capacity notices
func New(capacity int) notice.UseCase {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &impl{capacity: capacity, now: time.Now}
}

func (im *impl) Info(c bCtx.Ctx, message string) *notice.Notice {
	return im.post(c, &notice.Notice{Level: notice.LevelInfo, Message: message})
}

func (im *impl) Error(c bCtx.Ctx, message string, err error) *notice.Notice {
	return im.post(c, &notice.Notice{
		Level:   notice.LevelError,
		Kind:    domain.ErrorKind(err),
		Message: message,
	})
}

func (im *impl) post(c bCtx.Ctx, n *notice.Notice) *notice.Notice {
	n.Id = uuid.NewString()
	n.CreatedAt = im.now()

	im.mu.Lock()
	im.notices = append(im.notices, n)
	if over := len(im.notices) - im.capacity; over > 0 {
		im.notices = append([]*notice.Notice(nil), im.notices[over:]...)
	}
	im.mu.Unlock()

	c.WithFields(log.Fields{"id": n.Id, "level": n.Level, "kind": n.Kind}).Debug(n.Message)
	cp := *n
	return &cp
}

// List returns copies, newest first
func (im *impl) List(c bCtx.Ctx) []*notice.Notice {
	im.mu.Lock()
	defer im.mu.Unlock()
	res := make([]*notice.Notice, 0, len(im.notices))
	for i := len(im.notices) - 1; i >= 0; i-- {
		cp := *im.notices[i]
		res = append(res, &cp)
	}
	return res
}

func (im *impl) Dismiss(c bCtx.Ctx, id string) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	for i, n := range im.notices {
		if n.Id == id {
			im.notices = append(im.notices[:i], im.notices[i+1:]...)
			return nil
		}
	}
	return xerrors.Errorf("notice %s: %w", id, domain.ErrNotFound)
}
