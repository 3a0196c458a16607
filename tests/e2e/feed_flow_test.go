//go:build e2e

package e2e_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_BobLikesAlice walks through liking and unliking a post and a
// comment and checks counters, karma and the leaderboard after each step.
func TestE2E_BobLikesAlice(t *testing.T) {
	ts := setupTestServer(t)
	alice := register(t, ts, uniqueName("alice"))
	bob := register(t, ts, uniqueName("bob"))

	p := createPost(t, ts, alice.Token, "**hello** world")
	postID := p["id"].(string)
	assert.Contains(t, p["contentHtml"], "<strong>hello</strong>")
	c := createComment(t, ts, alice.Token, postID, "", "first")
	commentID := c["id"].(string)

	res := toggle(t, ts, bob.Token, "/posts/"+postID+"/like")
	assert.Equal(t, true, res["liked"])
	assert.Equal(t, 1, num(t, res, "likeCount"))
	assert.Equal(t, 5, num(t, res, "karmaDelta"))

	res = toggle(t, ts, bob.Token, "/comments/"+commentID+"/like")
	assert.Equal(t, true, res["liked"])
	assert.Equal(t, 1, num(t, res, "karmaDelta"))

	prof := profile(t, ts, alice.ID)
	assert.Equal(t, 6, num(t, prof, "totalKarma"))
	assert.Equal(t, 6, num(t, prof, "karma24h"))

	// Bob sees his like on the post; Alice does not.
	_, asBob := doJSON(t, ts, http.MethodGet, "/posts/"+postID, bob.Token, nil)
	assert.Equal(t, true, asBob["isLiked"])
	assert.Equal(t, 1, num(t, asBob, "likeCount"))
	_, asAlice := doJSON(t, ts, http.MethodGet, "/posts/"+postID, alice.Token, nil)
	assert.Equal(t, false, asAlice["isLiked"])

	res = toggle(t, ts, bob.Token, "/posts/"+postID+"/like")
	assert.Equal(t, false, res["liked"])
	assert.Equal(t, 0, num(t, res, "likeCount"))
	assert.Equal(t, -5, num(t, res, "karmaDelta"))

	prof = profile(t, ts, alice.ID)
	assert.Equal(t, 1, num(t, prof, "totalKarma"))

	// Bob's own karma never moved.
	assert.Equal(t, 0, num(t, profile(t, ts, bob.ID), "totalKarma"))
}

func TestE2E_LikeUnknownTarget(t *testing.T) {
	ts := setupTestServer(t)
	bob := register(t, ts, uniqueName("bob"))

	status, body := doJSON(t, ts, http.MethodPost, "/posts/00000000-0000-0000-0000-000000000001/like", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	status, body = doJSON(t, ts, http.MethodPost, "/comments/not-a-uuid/like", bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

// TestE2E_ConcurrentToggles hammers one post from many users at once and
// checks that the stored counter matches the likes table.
func TestE2E_ConcurrentToggles(t *testing.T) {
	ts := setupTestServer(t)
	author := register(t, ts, uniqueName("author"))
	p := createPost(t, ts, author.Token, "popular")
	postID := p["id"].(string)

	const users = 8
	const togglesPerUser = 3 // odd, so every user ends up liking the post
	likers := make([]account, users)
	for i := range likers {
		likers[i] = register(t, ts, uniqueName(fmt.Sprintf("liker%d", i)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, users*togglesPerUser)
	for _, u := range likers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range togglesPerUser {
				resp := restRequest(t, ts, http.MethodPost, "/posts/"+postID+"/like", u.Token, nil)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errs <- fmt.Errorf("toggle status %d", resp.StatusCode)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	_, got := doJSON(t, ts, http.MethodGet, "/posts/"+postID, "", nil)
	assert.Equal(t, users, num(t, got, "likeCount"))

	var stored int
	require.NoError(t, ts.Pool.QueryRow(t.Context(),
		`SELECT count(*) FROM likes WHERE target_kind = 'post' AND target_id = $1`, postID).Scan(&stored))
	assert.Equal(t, users, stored)

	assert.Equal(t, users*5, num(t, profile(t, ts, author.ID), "totalKarma"))
}

func TestE2E_CommentThread(t *testing.T) {
	ts := setupTestServer(t)
	alice := register(t, ts, uniqueName("alice"))
	bob := register(t, ts, uniqueName("bob"))
	postID := createPost(t, ts, alice.Token, "thread me")["id"].(string)

	// Build a chain root -> d1 -> d2 -> d3 -> d4 -> d5.
	parent := ""
	ids := make([]string, 0, 6)
	for depth := 0; depth <= 5; depth++ {
		c := createComment(t, ts, bob.Token, postID, parent, fmt.Sprintf("depth %d", depth))
		assert.Equal(t, depth, num(t, c, "depth"))
		parent = c["id"].(string)
		ids = append(ids, parent)
	}

	// Depth 5 is the last level; replying to it is rejected.
	status, body := doJSON(t, ts, http.MethodPost, "/posts/"+postID+"/comments", bob.Token, map[string]any{
		"content":  "too deep",
		"parentId": ids[5],
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	toggle(t, ts, alice.Token, "/comments/"+ids[2]+"/like")

	status, tree := doJSONList(t, ts, http.MethodGet, "/posts/"+postID+"/comments", alice.Token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tree, 1)

	node := tree[0].(map[string]any)
	for depth := 0; depth <= 5; depth++ {
		assert.Equal(t, ids[depth], node["id"])
		assert.Equal(t, depth == 2, node["isLiked"], "depth %d", depth)
		replies := node["replies"].([]any)
		if depth == 5 {
			assert.Empty(t, replies)
			break
		}
		require.Len(t, replies, 1)
		node = replies[0].(map[string]any)
	}

	// Bob earned one karma point from Alice's comment like.
	assert.Equal(t, 1, num(t, profile(t, ts, bob.ID), "totalKarma"))
}

func TestE2E_ReplyOnAnotherPostRejected(t *testing.T) {
	ts := setupTestServer(t)
	alice := register(t, ts, uniqueName("alice"))
	p1 := createPost(t, ts, alice.Token, "one")["id"].(string)
	p2 := createPost(t, ts, alice.Token, "two")["id"].(string)
	c := createComment(t, ts, alice.Token, p1, "", "on one")

	status, body := doJSON(t, ts, http.MethodPost, "/posts/"+p2+"/comments", alice.Token, map[string]any{
		"content":  "cross",
		"parentId": c["id"],
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestE2E_FeedListsAuthorPosts(t *testing.T) {
	ts := setupTestServer(t)
	alice := register(t, ts, uniqueName("alice"))
	for i := range 3 {
		createPost(t, ts, alice.Token, fmt.Sprintf("post %d", i))
	}

	status, body := doJSON(t, ts, http.MethodGet, "/posts?author="+alice.ID+"&limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "post 2", items[0].(map[string]any)["content"])
	assert.Equal(t, 2, num(t, body, "limit"))

	status, body = doJSON(t, ts, http.MethodGet, "/posts?author="+alice.ID+"&limit=2&offset=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"].([]any), 1)
}

// TestE2E_Leaderboard ranks users by karma earned in the last 24 hours.
// Other tests share the database, so only relative order is checked.
func TestE2E_Leaderboard(t *testing.T) {
	ts := setupTestServer(t)
	top := register(t, ts, uniqueName("top"))
	second := register(t, ts, uniqueName("second"))
	fan := register(t, ts, uniqueName("fan"))

	topPost := createPost(t, ts, top.Token, "a")["id"].(string)
	topPost2 := createPost(t, ts, top.Token, "b")["id"].(string)
	secondPost := createPost(t, ts, second.Token, "c")["id"].(string)

	toggle(t, ts, fan.Token, "/posts/"+topPost+"/like")
	toggle(t, ts, fan.Token, "/posts/"+topPost2+"/like")
	toggle(t, ts, fan.Token, "/posts/"+secondPost+"/like")

	status, entries := doJSONList(t, ts, http.MethodGet, "/leaderboard?limit=100", "")
	require.Equal(t, http.StatusOK, status)

	rank := map[string]int{}
	karma := map[string]int{}
	for i, e := range entries {
		m := e.(map[string]any)
		id := m["userId"].(string)
		rank[id] = i
		karma[id] = num(t, m, "karma24h")
	}
	require.Contains(t, rank, top.ID)
	require.Contains(t, rank, second.ID)
	assert.NotContains(t, rank, fan.ID)
	assert.Less(t, rank[top.ID], rank[second.ID])
	assert.Equal(t, 10, karma[top.ID])
	assert.Equal(t, 5, karma[second.ID])

	status, body := doJSON(t, ts, http.MethodGet, "/leaderboard?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}
