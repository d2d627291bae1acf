// Customini - создаёт Fallout76Custom.ini из установленных модов в папке Data.
//
// Использование:
//
//	./customini
//	./customini -datafolder "C:/Games/Fallout76/Data"
//	./customini -copyinicontents extra.ini
//	./customini -watch
//
// В большинстве случаев значения по умолчанию подходят.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ilkoid/customini/pkg/app"
	"github.com/ilkoid/customini/pkg/config"
	"github.com/ilkoid/customini/pkg/utils"
)

// Version - версия утилиты (заполняется при сборке)
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Парсим флаги
	var (
		dataFolder  = flag.String("datafolder", "", "Specify Fallout 76's data folder location (Default: current directory)")
		iniFolder   = flag.String("inifolder", "", "Specify the folder where Fallout76Custom.ini lives (Default: My Games/Fallout 76)")
		iniFilename = flag.String("inifilename", "", "Specify the filename for the ini (Default: "+config.DefaultIniFilename+")")
		runAsAdmin  = flag.Bool("runasadmin", false, "Runs as an admin. Use when Fallout 76 is installed in UAC location.")
		importIni   = flag.String("copyinicontents", "", "Copy a file's contents into your custom .ini (local path or s3://key)")
		configPath  = flag.String("config", "", "Path to "+config.SettingsFilename+" (default: ./"+config.SettingsFilename+")")
		s3Prefix    = flag.String("s3prefix", "", "Read archive names from this prefix of the configured S3 bucket")
		watchMode   = flag.Bool("watch", false, "Regenerate the ini whenever mods in the data folder change")
		withHistory = flag.Bool("history", false, "Record generated files in the history database")
		showHistory = flag.Bool("showhistory", false, "Print recent generated files and exit")
		saveConfig  = flag.Bool("save", false, "Save effective settings to the config file")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("customini version %s\n", Version)
		return 0
	}

	// 2. Перезапуск с правами администратора
	if *runAsAdmin {
		if err := utils.RelaunchAsAdmin(utils.StripFlag(os.Args[1:], "runasadmin")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// 3. Конфигурация: файл (если есть) + флаги
	cfgPath := config.FindConfigPath(*configPath)
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config from %s: %v\n", cfgPath, err)
		return 1
	}
	app.Overrides{
		DataFolder:  *dataFolder,
		IniFolder:   *iniFolder,
		IniFilename: *iniFilename,
		ImportIni:   *importIni,
		S3Prefix:    *s3Prefix,
		History:     *withHistory || *showHistory,
	}.Apply(cfg)

	if *debugFlag || cfg.App.Debug {
		if _, err := utils.InitLogger(""); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		defer utils.Close()
	}

	if *saveConfig {
		if err := cfg.Save(cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return 1
		}
		fmt.Printf("Settings saved to %s\n", cfgPath)
	}

	// 4. Компоненты
	comps, err := app.Initialize(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer comps.Close()

	if *showHistory {
		return printHistory(context.Background(), comps.History, cfg.History.GetDefaults().Limit, os.Stdout, os.Stderr)
	}

	fmt.Printf("Scanning for mods in: %s\n", comps.Source.Location())
	fmt.Printf("Creating ini file at: %s\n", cfg.Paths.IniPath())

	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	return generateAndWatch(ctx, comps, *watchMode, os.Stdout, os.Stderr)
}
