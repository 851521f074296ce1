// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp() 和 Run()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/embedded"
	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/scenes"
	"github.com/decker502/tennisbreak/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// AppName gdata 存储目录名
	AppName = "tennisbreak"
	// WindowTitle 窗口标题
	WindowTitle = "TENNIS // PIXEL_ART_BREAKOUT"

	defaultWindowWidth  = 1280
	defaultWindowHeight = 960
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出和 FPS 显示
	Verbose bool
	// Seed 随机数种子，0 表示使用当前时间
	Seed uint64
	// PersistHighScore 跨会话保存最高分（也可在 breakout.yaml 中开启）
	PersistHighScore bool
	// ConfigPath 外部玩法配置文件，为空时使用内置的 data/breakout.yaml
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool

	// ctx 由 Run 设置，取消时 Update 返回 ebiten.Termination
	ctx   context.Context
	saved bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置或模板加载失败时返回错误，由调用方决定是否退出。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameplay, err := loadGameplayConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	dataFS, err := embedded.FS()
	if err != nil {
		return nil, fmt.Errorf("资源未初始化: %w", err)
	}
	library, err := config.LoadTemplateLibrary(dataFS, config.ShapeTemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("关卡模板加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d shape templates: %v", library.Len(), library.IDs())

	// 音频：禁用时 AudioManager 以静音模式运行
	var audioContext *audio.Context
	if gameplay.Audio.Enabled {
		audioContext = audio.NewContext(gameplay.Audio.SampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, gameplay.Audio)
	audioManager.Preload()
	log.Printf("[App] AudioManager initialized (enabled=%v)", gameplay.Audio.Enabled)

	highScores := openHighScoreStore(cfg.PersistHighScore || gameplay.Session.PersistHighScore)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[App] Seed: %d", seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sim, err := systems.NewSimulation(gameplay, library, rng, audioManager, highScores)
	if err != nil {
		return nil, fmt.Errorf("模拟初始化失败: %w", err)
	}

	fontSource, err := systems.NewMonoFaceSource()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	renderer := systems.NewRenderSystem(int(gameplay.Arena.Width), int(gameplay.Arena.Height), fontSource)
	hud := systems.NewHUDRenderSystem(fontSource)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewBreakoutScene(sim, renderer, hud, audioManager, cfg.Verbose))

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
		ctx:          context.Background(),
	}, nil
}

// loadGameplayConfig 外部路径优先，否则读取内置配置
func loadGameplayConfig(path string) (*config.BreakoutConfig, error) {
	if path != "" {
		cfg, err := config.LoadBreakoutConfig(path)
		if err != nil {
			return nil, fmt.Errorf("玩法配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded gameplay config from %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(config.BreakoutConfigPath)
	if err != nil {
		return nil, fmt.Errorf("读取内置玩法配置失败: %w", err)
	}
	cfg, err := config.ParseBreakoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}
	return cfg, nil
}

// openHighScoreStore 宿主开启持久化时使用 gdata，失败则降级为内存存储
func openHighScoreStore(persist bool) game.HighScoreStore {
	if !persist {
		return game.NewMemoryHighScoreStore()
	}
	store, err := game.OpenGdataHighScoreStore(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v, high score will not persist", err)
		return game.NewMemoryHighScoreStore()
	}
	log.Printf("[App] High score persistence enabled")
	return store
}

// Run 打开窗口并运行游戏循环，直到窗口关闭或 ctx 被取消
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	ebiten.SetWindowSize(defaultWindowWidth, defaultWindowHeight)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(a)
	a.saveOnExit()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// saveOnExit 只保存一次
func (a *App) saveOnExit() {
	if a.saved {
		return
	}
	a.saved = true
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: Failed to save on exit")
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（固定 60 TPS）
func (a *App) Update() error {
	select {
	case <-a.ctx.Done():
		log.Printf("[App] Context cancelled: %v", a.ctx.Err())
		a.saveOnExit()
		return ebiten.Termination
	default:
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.DefaultTPS)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 使用物理窗口尺寸作为屏幕尺寸
// 逻辑竞技场到屏幕的等比缩放由场景自己计算
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
