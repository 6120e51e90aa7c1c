package model

// ScopeKind selects which posts populate a feed.
type ScopeKind int

const (
	// ScopeAll is the unscoped global feed.
	ScopeAll ScopeKind = iota
	// ScopeGroup limits the feed to one group's posts.
	ScopeGroup
	// ScopeAuthor limits the feed to one author's posts.
	ScopeAuthor
	// ScopeFollowing limits the feed to posts by authors the viewer follows.
	ScopeFollowing
)

// FeedScope is the resolved filter for a feed query. Slug and username
// resolution happens before a scope is built, so repositories only ever
// see concrete IDs.
type FeedScope struct {
	Kind     ScopeKind
	GroupID  int64 // set for ScopeGroup
	AuthorID int64 // set for ScopeAuthor
	ViewerID int64 // set for ScopeFollowing
}

// AllPosts scopes a feed to every post.
func AllPosts() FeedScope {
	return FeedScope{Kind: ScopeAll}
}

// GroupPosts scopes a feed to a single group.
func GroupPosts(groupID int64) FeedScope {
	return FeedScope{Kind: ScopeGroup, GroupID: groupID}
}

// AuthorPosts scopes a feed to a single author.
func AuthorPosts(authorID int64) FeedScope {
	return FeedScope{Kind: ScopeAuthor, AuthorID: authorID}
}

// FollowedPosts scopes a feed to authors followed by viewerID.
func FollowedPosts(viewerID int64) FeedScope {
	return FeedScope{Kind: ScopeFollowing, ViewerID: viewerID}
}

// PageMeta describes the pager's position within the full result set.
type PageMeta struct {
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// FeedPage is one page of a feed plus its pager metadata.
type FeedPage struct {
	Posts []Post   `json:"posts"`
	Page  PageMeta `json:"page"`
}

// GroupFeedPage is a group's feed with the group itself for display.
type GroupFeedPage struct {
	Group Group `json:"group"`
	FeedPage
}

// ProfilePage is an author's feed plus profile context for the viewer.
type ProfilePage struct {
	Author      UserSummary `json:"author"`
	PostCount   int         `json:"post_count"`
	IsFollowing bool        `json:"is_following"`
	FeedPage
}

// PostDetail is a single post with its comments and author context.
type PostDetail struct {
	Post      Post      `json:"post"`
	PostCount int       `json:"post_count"` // author's total posts
	Comments  []Comment `json:"comments"`
}
