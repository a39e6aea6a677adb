package game

// PlayerColor represents a player's color.
type PlayerColor string

const (
	ColorOrange PlayerColor = "orange"
	ColorCyan   PlayerColor = "cyan"
	ColorGreen  PlayerColor = "green"
	ColorYellow PlayerColor = "yellow"
	ColorPurple PlayerColor = "purple"
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
)

// AllColors returns all available player colors.
func AllColors() []PlayerColor {
	return []PlayerColor{
		ColorOrange,
		ColorCyan,
		ColorGreen,
		ColorYellow,
		ColorPurple,
		ColorRed,
		ColorBlue,
	}
}

// MaxPlayers is the number of distinct player colors.
const MaxPlayers = 7

// IsValid reports whether c is one of the known colors.
func (c PlayerColor) IsValid() bool {
	for _, known := range AllColors() {
		if c == known {
			return true
		}
	}
	return false
}

// PickColors returns n distinct colors, taking preferred ones first and
// filling up from AllColors. Unknown and repeated colors are skipped.
func PickColors(preferred []PlayerColor, n int) []PlayerColor {
	out := make([]PlayerColor, 0, n)
	used := make(map[PlayerColor]bool)
	add := func(c PlayerColor) {
		if len(out) < n && c.IsValid() && !used[c] {
			used[c] = true
			out = append(out, c)
		}
	}
	for _, c := range preferred {
		add(c)
	}
	for _, c := range AllColors() {
		add(c)
	}
	return out
}

// Player is one seat at the table. Seat 0 is the human player; territories
// refer to players by seat index.
type Player struct {
	Color      PlayerColor `json:"color"`
	IsAI       bool        `json:"isAI"`
	Reserve    int         `json:"reserve"` // Dice that did not fit during reinforcement
	Eliminated bool        `json:"eliminated"`
}

// NewPlayer creates the human player.
func NewPlayer(color PlayerColor) *Player {
	return &Player{Color: color}
}

// NewAIPlayer creates a computer-controlled player.
func NewAIPlayer(color PlayerColor) *Player {
	return &Player{Color: color, IsAI: true}
}
