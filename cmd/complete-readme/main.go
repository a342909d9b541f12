package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/scrape"
	"github.com/darkkaiser/baekjoon-study/scrape/problems/boj"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("########################################################")
	fmt.Println("###                                                  ###")
	fmt.Println("###           baekjoon-study complete-readme 0.1.0   ###")
	fmt.Println("###                                                  ###")
	fmt.Println("###                         developed by DarkKaiser  ###")
	fmt.Println("###                                                  ###")
	fmt.Println("########################################################")
	fmt.Println("")

	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("설정을 읽을 수 없어 종료합니다: %v", err)
		return
	}

	logger.Init(cfg)
	//goland:noinspection GoUnhandledErrorResult
	defer logger.Log.Sync()

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("README 작성 중 예외가 발생하였습니다.", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	s := scrape.New(cfg,
		boj.NewSolvedac(cfg.Scrape.SolvedacURL, cfg.Scrape.SolvedacTimeout),
		boj.NewAcmicpc(cfg.Scrape.AcmicpcURL, cfg.Scrape.UserAgent, cfg.Scrape.AcmicpcTimeout),
		m,
	)
	if err := s.Find(); err != nil {
		logger.Log.Error("처리할 README 파일을 찾을 수 없습니다.", zap.Error(err))
		return
	}
	if err := s.Scrape(ctx); err != nil {
		logger.Log.Warn("작업이 중단되었습니다. 가져온 문제까지만 저장합니다.", zap.Error(err))
	}
	s.Export()

	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Log.Warn("메트릭 파일을 저장할 수 없습니다.", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
	}
}
