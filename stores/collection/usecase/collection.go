package usecase

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/domain"
	"github.com/x-xyz/stakeview/domain/keys"
	"github.com/x-xyz/stakeview/domain/staking"
	"github.com/x-xyz/stakeview/service/cache"
	"github.com/x-xyz/stakeview/service/chain"
	"github.com/x-xyz/stakeview/service/chain/contract"
	webresource "github.com/x-xyz/stakeview/stores/web_resource/usecase"
)

const (
	defaultConcurrency = 8
	// upper bound of a balance enumerated token by token
	maxOwnedTokens = 10000
)

type CollectionUseCaseCfg struct {
	ChainClient    chain.Client
	Contract       contract.Erc721Contract
	WebResource    domain.WebResourceUseCase
	MetadataCache  cache.Service
	IpfsGateway    string
	ArGateway      string
	Concurrency    int
	ReceiptTimeout time.Duration
}

type impl struct {
	client         chain.Client
	contract       contract.Erc721Contract
	webResource    domain.WebResourceUseCase
	cache          cache.Service
	ipfsGateway    string
	arGateway      string
	concurrency    int
	receiptTimeout time.Duration
}

// tokenMetadata is the subset of the metadata json a card shows
type tokenMetadata struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func NewCollection(cfg *CollectionUseCaseCfg) staking.CollectionUseCase {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = contract.DefaultReceiptTimeout
	}
	return &impl{
		client:         cfg.ChainClient,
		contract:       cfg.Contract,
		webResource:    cfg.WebResource,
		cache:          cfg.MetadataCache,
		ipfsGateway:    cfg.IpfsGateway,
		arGateway:      cfg.ArGateway,
		concurrency:    cfg.Concurrency,
		receiptTimeout: cfg.ReceiptTimeout,
	}
}

func (im *impl) Address() domain.Address {
	return domain.Address(im.contract.Address().Hex())
}

type indexedNft struct {
	idx int
	nft *staking.OwnedNft
}

func (im *impl) OwnedTokens(c bCtx.Ctx, owner domain.Address) ([]*staking.OwnedNft, error) {
	ownerAddr := common.HexToAddress(owner.String())
	balance, err := im.contract.BalanceOf(c, ownerAddr)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("contract.BalanceOf failed")
		return nil, xerrors.Errorf("balanceOf %s: %v: %w", owner, err, domain.ErrFetchFailure)
	}
	if !balance.IsInt64() || balance.Sign() < 0 || balance.Int64() > maxOwnedTokens {
		c.WithFields(log.Fields{"balance": balance, "owner": owner}).Error("balance out of range")
		return nil, xerrors.Errorf("balanceOf %s: %s out of range: %w", owner, balance, domain.ErrFetchFailure)
	}
	n := int(balance.Int64())
	if n == 0 {
		return []*staking.OwnedNft{}, nil
	}

	b := goroutines.NewBatch(im.concurrency, goroutines.WithBatchSize(n))
	defer b.Close()
	for i := 0; i < n; i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			nft, err := im.ownedTokenAt(c, ownerAddr, idx)
			if err != nil {
				return nil, err
			}
			return &indexedNft{idx, nft}, nil
		})
	}
	b.QueueComplete()

	nfts := make([]*staking.OwnedNft, n)
	var firstErr error
	for ret := range b.Results() {
		if ret.Error() != nil {
			if firstErr == nil {
				firstErr = ret.Error()
			}
			continue
		}
		v := ret.Value().(*indexedNft)
		nfts[v.idx] = v.nft
	}
	if firstErr != nil {
		c.WithFields(log.Fields{"err": firstErr, "owner": owner}).Error("ownedTokenAt failed")
		return nil, xerrors.Errorf("owned tokens of %s: %v: %w", owner, firstErr, domain.ErrFetchFailure)
	}
	return nfts, nil
}

func (im *impl) ownedTokenAt(c bCtx.Ctx, owner common.Address, idx int) (*staking.OwnedNft, error) {
	id, err := im.contract.TokenOfOwnerByIndex(c, owner, big.NewInt(int64(idx)))
	if err != nil {
		return nil, err
	}
	return im.tokenCard(c, id)
}

// tokenCard reads tokenURI and decorates it with the cached metadata. A
// missing or unreadable metadata document does not fail the card.
func (im *impl) tokenCard(c bCtx.Ctx, id *big.Int) (*staking.OwnedNft, error) {
	tokenId := domain.TokenIdFromBigInt(id)
	uri, err := im.contract.TokenURI(c, id)
	if err != nil {
		return nil, err
	}

	nft := &staking.OwnedNft{
		TokenId:      tokenId,
		MetadataName: "#" + tokenId.String(),
	}
	if uri == "" {
		return nft, nil
	}
	nft.MetadataUrl = webresource.GatewayUrl(uri, im.ipfsGateway, im.arGateway)

	meta, err := im.metadata(c, tokenId, uri)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "tokenId": tokenId, "uri": uri}).Warn("metadata unavailable")
		return nft, nil
	}
	if meta.Name != "" {
		nft.MetadataName = meta.Name
	}
	if meta.Image != "" {
		nft.Image = webresource.GatewayUrl(meta.Image, im.ipfsGateway, im.arGateway)
	}
	return nft, nil
}

func (im *impl) metadata(c bCtx.Ctx, tokenId domain.TokenId, uri string) (*tokenMetadata, error) {
	meta := &tokenMetadata{}
	key := keys.RedisKey(im.Address().ToLowerStr(), tokenId.String())
	err := im.cache.GetByFunc(c, key, meta, func() (interface{}, error) {
		data, err := im.webResource.GetJson(c, uri)
		if err != nil {
			return nil, err
		}
		m := &tokenMetadata{}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, xerrors.Errorf("%v: %w", err, domain.ErrInvalidJsonFormat)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (im *impl) TokenMetadata(c bCtx.Ctx, tokenId domain.TokenId) (*staking.OwnedNft, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return nil, err
	}
	nft, err := im.tokenCard(c, id)
	if chain.IsExecutionReverted(err) {
		// tokenURI reverts for tokens that were never minted
		return nil, xerrors.Errorf("token %s: %w", tokenId, domain.ErrNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "tokenId": tokenId}).Error("tokenCard failed")
		return nil, xerrors.Errorf("token %s: %v: %w", tokenId, err, domain.ErrFetchFailure)
	}
	return nft, nil
}

func (im *impl) IsApprovedForAll(c bCtx.Ctx, owner, operator domain.Address) (bool, error) {
	approved, err := im.contract.IsApprovedForAll(c, common.HexToAddress(owner.String()), common.HexToAddress(operator.String()))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner, "operator": operator}).Error("contract.IsApprovedForAll failed")
		return false, xerrors.Errorf("isApprovedForAll: %v: %w", err, domain.ErrFetchFailure)
	}
	return approved, nil
}

func (im *impl) SetApprovalForAll(c bCtx.Ctx, owner, operator domain.Address, approved bool) (*staking.Receipt, error) {
	hash, err := im.contract.SetApprovalForAll(c, common.HexToAddress(owner.String()), common.HexToAddress(operator.String()), approved)
	if err != nil {
		return nil, err
	}
	return contract.Settle(c, im.client, hash, im.receiptTimeout)
}
