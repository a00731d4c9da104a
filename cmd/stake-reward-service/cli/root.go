package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName       = "config.yml"
	defaultPointsParamsFileName = "points-params.json"
)

var (
	cfgPath             string
	pointsParamsPath    string
	replayFlag          bool
	runDistributionFlag bool
	retryFailedPeriod   string
	rootCmd             = &cobra.Command{
		Use: "start-server",
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)
	defaultPointsParamsPath := getDefaultConfigFile(homePath, defaultPointsParamsFileName)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	rootCmd.PersistentFlags().StringVar(&pointsParamsPath, "params", defaultPointsParamsPath, fmt.Sprintf("points params file (default %s)", defaultPointsParamsPath))
	rootCmd.PersistentFlags().BoolVar(&replayFlag, "replay", false, "replay unpublished settlement events and exit")
	rootCmd.PersistentFlags().BoolVar(&runDistributionFlag, "run-distribution", false, "run the distribution for the previous period and exit")
	rootCmd.PersistentFlags().StringVar(&retryFailedPeriod, "retry-failed-rewards", "", "retry failed reward payouts of a period (YYYY-MM) and exit")
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

func GetPointsParamsPath() string {
	return pointsParamsPath
}

func GetReplayFlag() bool {
	return replayFlag
}

func GetRunDistributionFlag() bool {
	return runDistributionFlag
}

// GetRetryFailedRewardsPeriod returns the period passed to
// --retry-failed-rewards, or "" when the flag is not set.
func GetRetryFailedRewardsPeriod() string {
	return retryFailedPeriod
}
