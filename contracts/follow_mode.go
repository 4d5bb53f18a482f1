package contracts

// FollowMode controls how many linked children are validated at each level
// of a link-following run.
type FollowMode int

const (
	FollowNone FollowMode = iota
	FollowFirst
	FollowAll
)

func ComposeFollowMode(follow, onlyFirst bool) FollowMode {
	if !follow {
		return FollowNone
	}
	if onlyFirst {
		return FollowFirst
	}
	return FollowAll
}

func (this FollowMode) String() string {
	switch this {
	case FollowNone:
		return "NONE"
	case FollowFirst:
		return "FIRST"
	case FollowAll:
		return "ALL"
	default:
		return "UNKNOWN"
	}
}
