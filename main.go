package main

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/darkkaiser/baekjoon-study/config"
	"github.com/darkkaiser/baekjoon-study/logger"
	"github.com/darkkaiser/baekjoon-study/metrics"
	"github.com/darkkaiser/baekjoon-study/study"
	"github.com/darkkaiser/baekjoon-study/study/history"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("########################################################")
	fmt.Println("###                                                  ###")
	fmt.Println("###           baekjoon-study update-readme 0.1.0     ###")
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

	// 예상하지 못한 에러가 발생하더라도 로그만 남기고 정상 종료한다.
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("README 갱신 중 예외가 발생하였습니다.", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()

	m := metrics.New()

	s := study.New(cfg, history.NewGit(cfg.Root), m)
	if err := s.Scan(); err != nil {
		logger.Log.Error("풀이 폴더를 스캔할 수 없습니다.", zap.Error(err))
		return
	}
	s.Calculate()
	if err := s.Export(); err != nil {
		logger.Log.Error("일부 문서를 갱신하지 못하였습니다.", zap.Error(err))
	}
	s.Report()

	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Log.Warn("메트릭 파일을 저장할 수 없습니다.", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
	}
}
