package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/media"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// ---- In-memory fakes for repositories and the media delegate ----

type fakeUserRepo struct {
	users map[uint]*models.User
	next  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, next: 1}
}

// CreateUser enforces the unique indexes the real schema carries:
// username, email and (non-null) firebase_uid.
func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
		if u.FirebaseUID != nil && user.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.next
	r.next++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) GetUsersExcluding(ids []uint) ([]models.User, error) {
	excluded := map[uint]bool{}
	for _, id := range ids {
		excluded[id] = true
	}
	var out []models.User
	for _, u := range r.users {
		if !excluded[u.ID] {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakePostRepo struct {
	posts map[string]models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]models.Post{}}
}

func (r *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID.Hex()] = *post
	return nil
}

// seed inserts a post with a fixed creation time, for ordering tests
func (r *fakePostRepo) seed(post models.Post) string {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	r.posts[post.ID.Hex()] = post
	return post.ID.Hex()
}

func (r *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakePostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.sorted(func(models.Post) bool { return true }), nil
}

func (r *fakePostRepo) GetPostsByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error) {
	authors := map[uint]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	return r.sorted(func(p models.Post) bool { return authors[p.PostedBy] }), nil
}

func (r *fakePostRepo) sorted(keep func(models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakePostRepo) UpdatePost(ctx context.Context, id string, set bson.M) error {
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	if v, ok := set["title"].(string); ok {
		p.Title = v
	}
	if v, ok := set["description"].(string); ok {
		p.Description = v
	}
	if v, ok := set["thumbnail"].(models.MediaRef); ok {
		p.Thumbnail = v
	}
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return nil
}

func (r *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) IncrementRepostCount(ctx context.Context, id string) error {
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.NumberOfReposts++
	r.posts[id] = p
	return nil
}

type fakeFollowRepo struct {
	edges []models.Follow
	next  uint
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{next: 1}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	follow.ID = r.next
	r.next++
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return repositories.ErrFollowNotFound
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range r.edges {
		if e.FollowingID == userID {
			ids = append(ids, e.FollowerID)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	ids, _ := r.GetFollowerIDs(userID)
	return int64(len(ids)), nil
}

func (r *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	ids, _ := r.GetFollowingIDs(userID)
	return int64(len(ids)), nil
}

type fakeRepostRepo struct {
	rows []models.Repost
	next uint
}

func newFakeRepostRepo() *fakeRepostRepo {
	return &fakeRepostRepo{next: 1}
}

func (r *fakeRepostRepo) CreateRepost(repost *models.Repost) error {
	repost.ID = r.next
	repost.CreatedAt = time.Now()
	r.next++
	r.rows = append(r.rows, *repost)
	return nil
}

func (r *fakeRepostRepo) GetRepostsByUser(userID uint) ([]models.Repost, error) {
	var out []models.Repost
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeRepostRepo) CountRepostsByPost(postID string) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepostRepo) DeleteRepostsByPost(postID string) error {
	var kept []models.Repost
	for _, row := range r.rows {
		if row.PostID != postID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakeCommentRepo struct {
	comments map[uint]models.Comment
	next     uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]models.Comment{}, next: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.next
	r.next++
	r.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.comments[comment.ID] = *comment
	return nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteCommentsByPost(postID string) error {
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeReactionRepo struct {
	reactions map[uint]models.Reaction
	next      uint
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: map[uint]models.Reaction{}, next: 1}
}

func (r *fakeReactionRepo) UpsertReaction(reaction *models.Reaction) error {
	for id, rc := range r.reactions {
		if rc.PostID == reaction.PostID && rc.UserID == reaction.UserID {
			rc.Kind = reaction.Kind
			r.reactions[id] = rc
			*reaction = rc
			return nil
		}
	}
	reaction.ID = r.next
	r.next++
	r.reactions[reaction.ID] = *reaction
	return nil
}

func (r *fakeReactionRepo) GetReaction(postID string, userID uint) (*models.Reaction, error) {
	for _, rc := range r.reactions {
		if rc.PostID == postID && rc.UserID == userID {
			cp := rc
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReactionRepo) GetReactionsByPostID(postID string) ([]models.Reaction, error) {
	var out []models.Reaction
	for _, rc := range r.reactions {
		if rc.PostID == postID {
			out = append(out, rc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReactionRepo) DeleteReaction(postID string, userID uint) error {
	for id, rc := range r.reactions {
		if rc.PostID == postID && rc.UserID == userID {
			delete(r.reactions, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeReactionRepo) DeleteReactionsByPost(postID string) error {
	for id, rc := range r.reactions {
		if rc.PostID == postID {
			delete(r.reactions, id)
		}
	}
	return nil
}

// fakeStorage is an in-memory media delegate
type fakeStorage struct {
	failUpload bool
	failDelete bool
	uploads    int
	deleted    []string
	lastCat    media.Category
}

func (s *fakeStorage) Upload(ctx context.Context, localPath string, category media.Category) (*models.MediaRef, error) {
	if s.failUpload {
		return nil, fmt.Errorf("delegate unavailable")
	}
	s.uploads++
	s.lastCat = category
	return &models.MediaRef{
		PublicID:  fmt.Sprintf("%s/asset-%d", category.Folder(), s.uploads),
		SecureURL: fmt.Sprintf("https://media.example.com/asset-%d", s.uploads),
	}, nil
}

func (s *fakeStorage) Delete(ctx context.Context, publicID string) error {
	if s.failDelete {
		return fmt.Errorf("delegate unavailable")
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}
