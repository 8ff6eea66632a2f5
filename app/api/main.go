package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/stakeview/base/ctx"
	"github.com/x-xyz/stakeview/base/ethereum"
	"github.com/x-xyz/stakeview/base/log"
	"github.com/x-xyz/stakeview/base/metrics"
	bValidator "github.com/x-xyz/stakeview/base/validator"
	"github.com/x-xyz/stakeview/domain/keys"
	"github.com/x-xyz/stakeview/domain/staking"
	mmiddleware "github.com/x-xyz/stakeview/middleware"
	"github.com/x-xyz/stakeview/service/cache"
	"github.com/x-xyz/stakeview/service/cache/provider"
	"github.com/x-xyz/stakeview/service/cache/provider/compound"
	"github.com/x-xyz/stakeview/service/cache/provider/primitive"
	redisprovider "github.com/x-xyz/stakeview/service/cache/provider/redis"
	"github.com/x-xyz/stakeview/service/chain"
	"github.com/x-xyz/stakeview/service/chain/contract"
	"github.com/x-xyz/stakeview/service/ens"
	"github.com/x-xyz/stakeview/service/redis"
	action_usecase "github.com/x-xyz/stakeview/stores/action/usecase"
	chain_usecase "github.com/x-xyz/stakeview/stores/chain/usecase"
	collection_usecase "github.com/x-xyz/stakeview/stores/collection/usecase"
	dashboard_delivery "github.com/x-xyz/stakeview/stores/dashboard/delivery/http"
	hc_delivery "github.com/x-xyz/stakeview/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/stakeview/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/stakeview/stores/healthcheck/usecase"
	notice_usecase "github.com/x-xyz/stakeview/stores/notice/usecase"
	staking_usecase "github.com/x-xyz/stakeview/stores/staking/usecase"
	sync_usecase "github.com/x-xyz/stakeview/stores/sync/usecase"
	wallet_usecase "github.com/x-xyz/stakeview/stores/wallet/usecase"
	web_resource_repository "github.com/x-xyz/stakeview/stores/web_resource/repository"
	web_resource_usecase "github.com/x-xyz/stakeview/stores/web_resource/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(metrics.New("http"))
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// cache layers, redis is optional
	layers := []provider.Provider{
		primitive.NewPrimitive("metadata", viper.GetInt("metadata.localCacheMB")),
	}
	var redisCache redis.Service
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		redisCacheName := viper.GetString("redis_cache.name")
		pool, err := redis.Connect(uri, viper.GetString("redis_cache.password"), redis.PoolParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		if err != nil {
			context.WithField("err", err).Panic("redis.Connect failed")
		}
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), pool)
		layers = append(layers, redisprovider.NewRedis(redisCache))
	}
	cacheLayer := compound.NewCompound(layers)

	// init chain service
	context.Info("init chain client")
	rpcUrl := viper.GetString("network.rpcUrl")
	ethClient, err := ethclient.Dial(rpcUrl)
	if err != nil {
		context.WithFields(log.Fields{"err": err, "rpcUrl": rpcUrl}).Panic("ethclient.Dial failed")
	}
	signer, err := wallet_usecase.NewKeystore(viper.GetStringSlice("wallet.privateKeys"))
	if err != nil {
		context.WithField("err", err).Panic("wallet_usecase.NewKeystore failed")
	}
	chainClient := chain.NewClient(&chain.ClientCfg{
		ChainId:      viper.GetInt64("network.chainId"),
		Backend:      ethereum.NewThrottledClient(ethClient, viper.GetInt("network.rpcConcurrency")),
		Signer:       signer,
		PollInterval: viper.GetDuration("tx.pollInterval"),
		PollLimit:    viper.GetDuration("tx.pollLimit"),
		Metrics:      metrics.New("chain"),
	})

	collectionAddr := common.HexToAddress(viper.GetString("contracts.collection"))
	stakingAddr := common.HexToAddress(viper.GetString("contracts.staking"))
	receiptTimeout := viper.GetDuration("tx.receiptTimeout")
	erc721 := contract.NewErc721(chainClient, collectionAddr)

	// token uri readers
	httpClient := http.Client{}
	httpTimeout := viper.GetDuration("http.timeout")
	ipfsGateway := viper.GetString("ipfs.gateway")
	arGateway := viper.GetString("arweave.gateway")
	ipfsReader := web_resource_repository.NewIpfsGatewayReaderRepo(httpClient, ipfsGateway, httpTimeout)
	if nodeApi := viper.GetString("ipfs.nodeApi"); nodeApi != "" {
		ipfsReader = web_resource_repository.NewIpfsNodeApiReaderRepo(ipfsapi.NewShell(nodeApi), httpTimeout)
	}
	webResource := web_resource_usecase.NewWebResourceUseCase(&web_resource_usecase.WebResourceUseCaseCfg{
		HttpReader:    web_resource_repository.NewHttpReaderRepo(httpClient, httpTimeout, nil),
		IpfsReader:    ipfsReader,
		DataUriReader: web_resource_repository.NewDataUriReaderRepo(),
		ArUriReader:   web_resource_repository.NewArReaderRepo(httpClient, arGateway, httpTimeout),
	})

	metadataTtl := viper.GetDuration("metadata.cacheTtl")
	collection := collection_usecase.NewCollection(&collection_usecase.CollectionUseCaseCfg{
		ChainClient: chainClient,
		Contract:    erc721,
		WebResource: webResource,
		MetadataCache: cache.New(cache.ServiceConfig{
			Ttl:     metadataTtl,
			Pfx:     keys.PfxTokenMetadata,
			Cache:   cacheLayer,
			Metrics: metrics.New("metadata_cache"),
		}),
		IpfsGateway:    ipfsGateway,
		ArGateway:      arGateway,
		Concurrency:    viper.GetInt("metadata.concurrency"),
		ReceiptTimeout: receiptTimeout,
	})
	stakingUC := staking_usecase.NewStaking(&staking_usecase.StakingUseCaseCfg{
		ChainClient:    chainClient,
		Contract:       contract.NewStaking(chainClient, stakingAddr),
		ReceiptTimeout: receiptTimeout,
	})

	// ens on the configured network
	ensService := ens.NewNop()
	if viper.GetBool("ens.enabled") {
		ensService = ens.New(ethClient, cache.New(cache.ServiceConfig{
			Ttl:   metadataTtl,
			Pfx:   "ens",
			Cache: cacheLayer,
		}))
	}

	session := wallet_usecase.NewSession()
	resolver := chain_usecase.NewResolver(&chain_usecase.ResolverCfg{
		ChainClient: chainClient,
		Contracts: map[staking.ContractKind]common.Address{
			staking.ContractCollection: collectionAddr,
			staking.ContractStaking:    stakingAddr,
		},
		Verifiers: map[staking.ContractKind]chain_usecase.Verifier{
			staking.ContractCollection: erc721.Supports721Interface,
		},
		Interval:    viper.GetDuration("resolver.interval"),
		MaxInterval: viper.GetDuration("resolver.maxInterval"),
	})
	notices := notice_usecase.New(viper.GetInt("notice.capacity"))
	sync := sync_usecase.NewSync(&sync_usecase.SyncUseCaseCfg{
		Session:      session,
		Registry:     resolver,
		Collection:   collection,
		Staking:      stakingUC,
		Notices:      notices,
		FetchTimeout: viper.GetDuration("sync.fetchTimeout"),
		Metrics:      metrics.New("sync"),
	})
	rewardDecimals := viper.GetInt32("reward.decimals")
	rewardSymbol := viper.GetString("reward.symbol")
	action := action_usecase.NewAction(&action_usecase.ActionUseCaseCfg{
		Session:        session,
		Registry:       resolver,
		Collection:     collection,
		Staking:        stakingUC,
		Sync:           sync,
		Notices:        notices,
		RewardDecimals: rewardDecimals,
		RewardSymbol:   rewardSymbol,
		Metrics:        metrics.New("action"),
	})

	sync.Start(context)
	resolver.Start(context)

	// a configured key doubles as the initially connected wallet
	if accounts := signer.Accounts(); len(accounts) > 0 && viper.GetBool("wallet.autoConnect") {
		if err := session.Connect(context, accounts[0]); err != nil {
			context.WithFields(log.Fields{"err": err, "address": accounts[0]}).Warn("session.Connect failed")
		}
	}

	hc := hc_usecase.New(hc_repo.New(chainClient, redisCache))
	hc_delivery.New(e, hc)
	dashboard_delivery.New(e, &dashboard_delivery.HandlerCfg{
		Sync:           sync,
		Action:         action,
		Session:        session,
		Collection:     collection,
		Notices:        notices,
		Ens:            ensService,
		RewardDecimals: rewardDecimals,
		RewardSymbol:   rewardSymbol,
		TokenCache:     cacheLayer,
		TokenCacheTtl:  metadataTtl,
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	resolver.Stop()
	sync.Stop()
}
