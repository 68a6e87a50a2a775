package roster

// GroupType classifies a rank symbol for presentation.
type GroupType string

const (
	GroupLeadership GroupType = "leadership"
	GroupStaff      GroupType = "staff"
	GroupNormal     GroupType = "normal"
	GroupPunishment GroupType = "punishment"
)

// Group describes one rank symbol. Lower Order sorts first.
type Group struct {
	Name  string
	Type  GroupType
	Order float64
}

// Ranker resolves the group of a rank symbol.
type Ranker interface {
	Group(symbol rune) (Group, bool)
}

// Groups is a rank table keyed by the first character of a display name.
type Groups map[rune]Group

// Group implements Ranker.
func (g Groups) Group(symbol rune) (Group, bool) {
	group, ok := g[symbol]
	return group, ok
}

// DefaultGroups is the rank table used until the server sends its own.
func DefaultGroups() Groups {
	return Groups{
		'~': {Name: "Administrator (~)", Type: GroupLeadership, Order: 10001},
		'#': {Name: "Room Owner (#)", Type: GroupLeadership, Order: 10002},
		'&': {Name: "Administrator (&)", Type: GroupLeadership, Order: 10003},
		'★': {Name: "Host (★)", Type: GroupStaff, Order: 10004},
		'@': {Name: "Moderator (@)", Type: GroupStaff, Order: 10005},
		'%': {Name: "Driver (%)", Type: GroupStaff, Order: 10006},
		'*': {Name: "Bot (*)", Type: GroupNormal, Order: 10007},
		'☆': {Name: "Player (☆)", Type: GroupNormal, Order: 10008},
		'+': {Name: "Voice (+)", Type: GroupNormal, Order: 10009},
		' ': {Type: GroupNormal, Order: 10010},
		'!': {Name: "Muted (!)", Type: GroupPunishment, Order: 10011},
		'✖': {Name: "Namelocked (✖)", Type: GroupPunishment, Order: 10012},
		'‽': {Name: "Locked (‽)", Type: GroupPunishment, Order: 10013},
	}
}
