// meta/meta.go
package meta

import "time"

// TICK_INTERVAL defines the delay between automatic moves in the terminal UI.
const TICK_INTERVAL = 100 * time.Millisecond

// GAMES_PER_CONFIG defines the number of games each agent plays in an experiment.
const GAMES_PER_CONFIG = 10

// EXPERIMENTS_DIR defines where experiment records are stored.
const EXPERIMENTS_DIR = "experiments"

// LOG_FILE receives the logs while the terminal UI owns the screen.
const LOG_FILE = "tilemerge.log"

// WIN_TILE defines the tile that counts as a won game.
const WIN_TILE = 2048
