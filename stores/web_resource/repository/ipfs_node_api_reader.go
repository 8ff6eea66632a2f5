package repository

import (
	"io"
	"strings"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
)

type ipfsNodeApiReaderRepo struct {
	shell      *ipfsapi.Shell
	ctxTimeout time.Duration
}

// NewIpfsNodeApiReaderRepo reads ipfs paths with `cat` on a node's http api
func NewIpfsNodeApiReaderRepo(s *ipfsapi.Shell, timeout time.Duration) domain.WebResourceReaderRepository {
	return &ipfsNodeApiReaderRepo{shell: s, ctxTimeout: timeout}
}

func (r *ipfsNodeApiReaderRepo) Get(c ctx.Ctx, cid string) ([]byte, error) {
	cid = strings.TrimPrefix(cid, "/")
	tctx, cancel := ctx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	resp, err := r.shell.Request("cat", cid).Send(tctx)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "cid": cid}).Error("shell.Request failed")
		return nil, err
	}
	defer resp.Close()
	if resp.Error != nil {
		c.WithFields(log.Fields{"err": resp.Error, "cid": cid}).Error("shell.Request failed")
		return nil, resp.Error
	}
	return io.ReadAll(io.LimitReader(resp.Output, defaultMaxBytes))
}
