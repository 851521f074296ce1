package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/tennisbreak/pkg/app"
	"github.com/decker502/tennisbreak/pkg/embedded"
)

var (
	verbose          = flag.Bool("verbose", false, "显示详细日志和 FPS")
	seed             = flag.Uint64("seed", 0, "随机数种子（0 表示使用当前时间）")
	persistHighScore = flag.Bool("persist-highscore", false, "跨会话保存最高分")
	configPath       = flag.String("config", "", "外部玩法配置文件（默认使用内置 data/breakout.yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		Seed:             *seed,
		PersistHighScore: *persistHighScore,
		ConfigPath:       *configPath,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gameApp.Run(ctx); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏运行失败: %v", err)
	}
}
