package reviews

import (
	"fmt"
	"sort"
	"strings"

	"cultureland/internal/domain/reactions"
)

type SortOrder string

const (
	OrderRecent SortOrder = "recent"
	OrderLikes  SortOrder = "likes"
	OrderHates  SortOrder = "hates"
)

// ParseSortOrder maps the orderBy query value; empty means recent.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderRecent:
		return OrderRecent, nil
	case OrderLikes:
		return OrderLikes, nil
	case OrderHates:
		return OrderHates, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// Tally counts the LIKE and HATE reactions in rs.
func Tally(rs []reactions.Reaction) (likes, hates int) {
	for _, r := range rs {
		switch r.Value {
		case reactions.Like:
			likes++
		case reactions.Hate:
			hates++
		}
	}
	return likes, hates
}

// Summarize turns reviews with their reaction sets into views, keeping input order.
func Summarize(items []WithReactions) []View {
	views := make([]View, 0, len(items))
	for _, item := range items {
		likes, hates := Tally(item.Reactions)
		views = append(views, View{
			Review: item.Review,
			Likes:  likes,
			Hates:  hates,
		})
	}
	return views
}

// Order sorts views in place. Views are expected newest first already, so
// recent leaves them untouched and the count orders are stable.
func Order(views []View, order SortOrder) {
	switch order {
	case OrderLikes:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Likes > views[j].Likes
		})
	case OrderHates:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Hates > views[j].Hates
		})
	}
}
