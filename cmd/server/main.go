package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/duomart-next/internal/app"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if weak := app.WeakSecrets(cfg); len(weak) > 0 {
		if app.IsReleaseMode(cfg) {
			stdLog.Fatalf("签名密钥过弱或仍为默认值: %s", strings.Join(weak, ", "))
		}
		stdLog.Printf("警告: 签名密钥过弱，生产环境请更换: %s", strings.Join(weak, ", "))
	}
	if app.IsReleaseMode(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.OpenDatabase(cfg); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "duomart pricing" + ansiReset)
	fmt.Println(ansiGreen + "conditional pricing engine · mode=" + mode + ansiReset)
	fmt.Println(ansiCyan + "health: /healthz" + ansiReset)
}
