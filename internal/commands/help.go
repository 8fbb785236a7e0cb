package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for sleeplog",
	Long:  `Display detailed help for all sleeplog commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if c, _, err := rootCmd.Find(args); err == nil && c != rootCmd {
				_ = c.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
   ☾  s l e e p l o g

sleeplog - local sleep tracker

COMMANDS:

  profile add <name>      Create a profile and switch to it
  profile ls              List profiles (* marks the current one)
  profile use <id|name>   Switch profile
  profile rm <id|name>    Delete a profile and all its sleep records
    -y, --yes             Skip the confirmation

  start [main|nap]        Start a sleep now and open the timer
    --note                Note kept with the sleep
    --no-ui               Skip the interactive timer

    Timer keys:
      e / w         Wake up and rate the sleep (1-5)
      q / esc       Leave the timer, keep sleeping

  end                     End the current sleep
    -r, --rating          Rating 1-5 (asked for when missing)
    --note                Note for the session

  status                  Asleep or awake, and today's total

  add [entry]             Log a past sleep with smart parsing
    -i, --interactive     Use the wizard
    --start, --end        HH:mm or "<day> HH:mm"
    -t, --type            main|nap
    -r, --rating          Rating 1-5
    --note                Note
    --no-ui               Never open the wizard

    Smart syntax:
      HH:mm-HH:mm   Start and end (end rolls past midnight)
      @nap          Sleep type
      +4            Rating
      on:yesterday  Day of the start

    Example:
      sleeplog add "23:10-07:05 +4 on:yesterday restless"

  rm <id>                 Delete a session (id prefix from 'day')
  day [date]              Sessions of one day with totals and score
  week [date]             Monday-to-Sunday table
  month [yyyy-mm]         Calendar, goal days highlighted
    --json                JSON output (day, week, month, log)

    Calendar keys:
      ←/→/↑/↓, h/l/k/j  Move between days
      [ / ]             Previous/next month
      t                 Jump to today
      esc/q             Quit

  settings                Show settings
    --goal                Daily goal: 7:30, 7h30m or minutes
    --goal-hours          Daily goal in whole hours
    --boundary            Day boundary HH:mm (default 02:00)
    --theme               dark|light

  export [file]           Back up the current profile as JSON
  import <file>           Restore a backup (replaces its sessions)
  log                     Deletions and profile switches
  version                 Version information
  help                    Show this help

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.sleeplog/config.yaml)
  --db <file>             Database file (SLEEPLOG_DB_PATH)
  --log-level <level>     debug|info|warn|error (SLEEPLOG_LOG_LEVEL)
  --tz <zone>             IANA timezone (SLEEPLOG_TIMEZONE)

`)
}
