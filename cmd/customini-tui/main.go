// Customini-tui - интерактивная версия customini на Bubble Tea.
//
// Показывает найденные моды по секциям, создаёт ini по клавише g,
// позволяет поменять пути (клавиша e) и сохраняет настройки
// в customini.yaml по клавише s.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilkoid/customini/pkg/app"
	"github.com/ilkoid/customini/pkg/config"
	"github.com/ilkoid/customini/pkg/tui"
	"github.com/ilkoid/customini/pkg/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", "", "Path to "+config.SettingsFilename)
		dataFolder = flag.String("datafolder", "", "Fallout 76 data folder")
		iniFolder  = flag.String("inifolder", "", "Folder where Fallout76Custom.ini lives")
		importIni  = flag.String("copyinicontents", "", "Copy a file's contents into your custom .ini")
	)
	flag.Parse()

	cfgPath := config.FindConfigPath(*configPath)
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config from %s: %v\n", cfgPath, err)
		return 1
	}
	app.Overrides{DataFolder: *dataFolder, IniFolder: *iniFolder, ImportIni: *importIni}.Apply(cfg)

	// TUI занимает терминал, поэтому лог всегда в файл
	if _, err := utils.InitLogger(""); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	comps, err := app.Initialize(cfg)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Run закрывает компоненты сам: пути могут смениться во время работы
	if err := tui.Run(ctx, comps, cfgPath); err != nil {
		utils.Error("TUI failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
