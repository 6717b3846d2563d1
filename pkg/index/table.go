package index

import (
	"fmt"
	"strings"
)

// Table describes a primary index table and how conflicting rows merge.
type Table struct {
	Name           string
	Columns        []string
	ConflictClause string
}

// ToUpsertStatement renders the table's parameterized insert, conflict
// clause included.
func (tbl *Table) ToUpsertStatement() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tbl.Columns)), ", ")
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) %s",
		tbl.Name, strings.Join(tbl.Columns, ", "), placeholders, tbl.ConflictClause,
	)
}

var TableProfiles = Table{
	"profiles",
	[]string{"authority", "address", "username", "bio", "pfp", "account_type", "verified",
		"post_count", "follower_count", "following_count", "created_at", "indexed_at"},
	`ON CONFLICT(authority) DO UPDATE SET
		address = excluded.address, username = excluded.username, bio = excluded.bio,
		pfp = excluded.pfp, account_type = excluded.account_type, verified = excluded.verified,
		post_count = excluded.post_count, follower_count = excluded.follower_count,
		following_count = excluded.following_count,
		created_at = CASE WHEN excluded.created_at <> 0 THEN excluded.created_at ELSE profiles.created_at END,
		indexed_at = excluded.indexed_at`,
}

var TablePosts = Table{
	"posts",
	[]string{"address", "author", "content", "likes", "created_at", "post_id", "compressed", "indexed_at"},
	`ON CONFLICT(address) DO UPDATE SET
		likes = excluded.likes, indexed_at = excluded.indexed_at`,
}

var TableFollows = Table{
	"follows",
	[]string{"address", "follower", "following", "created_at", "indexed_at"},
	`ON CONFLICT(address) DO NOTHING`,
}

var TableLikes = Table{
	"likes",
	[]string{"address", "user_pubkey", "post_address", "created_at", "indexed_at"},
	`ON CONFLICT(address) DO NOTHING`,
}

var TableReferrals = Table{
	"referrals",
	[]string{"address", "referred", "referrer", "created_at", "indexed_at"},
	`ON CONFLICT(address) DO NOTHING`,
}
