package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const testPageSize = 10

func makePosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			ID:       int64(i + 1),
			Text:     fmt.Sprintf("post %d", i+1),
			PubDate:  time.Now().Add(-time.Duration(i) * time.Minute),
			AuthorID: "author-1",
			Author:   models.User{ID: "author-1", Username: "leo"},
		})
	}
	return posts
}

func newPostServiceForTest(postRepo *MockPostRepository, groupRepo *MockGroupRepository,
	userRepo *MockUserRepository, followRepo *MockFollowRepository,
	commentRepo *MockCommentRepository) PostService {
	return NewPostService(postRepo, groupRepo, userRepo, followRepo, commentRepo, testPageSize)
}

func TestListIndex_Pagination(t *testing.T) {
	all := makePosts(13)

	t.Run("FirstPageHasTen", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Count", mock.Anything).Return(int64(13), nil)
		postRepo.On("List", mock.Anything, 0, testPageSize).Return(all[:10], nil)

		svc := newPostServiceForTest(postRepo, nil, nil, nil, nil)

		page, err := svc.ListIndex(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, page.Data, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, int64(13), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		postRepo.AssertExpectations(t)
	})

	t.Run("SecondPageHasThree", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Count", mock.Anything).Return(int64(13), nil)
		postRepo.On("List", mock.Anything, 10, testPageSize).Return(all[10:], nil)

		svc := newPostServiceForTest(postRepo, nil, nil, nil, nil)

		page, err := svc.ListIndex(context.Background(), 2)
		assert.NoError(t, err)
		assert.Len(t, page.Data, 3)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("OutOfRangeClampsToLastPage", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Count", mock.Anything).Return(int64(13), nil)
		postRepo.On("List", mock.Anything, 10, testPageSize).Return(all[10:], nil)

		svc := newPostServiceForTest(postRepo, nil, nil, nil, nil)

		page, err := svc.ListIndex(context.Background(), 99)
		assert.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Data, 3)
	})
}

func TestListByGroup_UnknownSlug(t *testing.T) {
	groupRepo := new(MockGroupRepository)
	groupRepo.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := newPostServiceForTest(new(MockPostRepository), groupRepo, nil, nil, nil)

	_, err := svc.ListByGroup(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestProfile(t *testing.T) {
	author := &models.User{ID: "author-1", Username: "leo", FirstName: "Leo"}

	t.Run("FollowingFlagForViewer", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		followRepo := new(MockFollowRepository)

		userRepo.On("FindByUsername", mock.Anything, "leo").Return(author, nil)
		postRepo.On("CountByAuthor", mock.Anything, "author-1").Return(int64(3), nil)
		postRepo.On("ListByAuthor", mock.Anything, "author-1", 0, testPageSize).Return(makePosts(3), nil)
		followRepo.On("Exists", mock.Anything, "viewer-1", "author-1").Return(true, nil)

		svc := newPostServiceForTest(postRepo, nil, userRepo, followRepo, nil)

		page, err := svc.Profile(context.Background(), "leo", "viewer-1", 1)
		assert.NoError(t, err)
		assert.True(t, page.Following)
		assert.Equal(t, int64(3), page.PostCount)
		assert.Equal(t, "leo", page.Author.Username)
	})

	t.Run("AnonymousViewerSkipsFollowLookup", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		followRepo := new(MockFollowRepository)

		userRepo.On("FindByUsername", mock.Anything, "leo").Return(author, nil)
		postRepo.On("CountByAuthor", mock.Anything, "author-1").Return(int64(0), nil)
		postRepo.On("ListByAuthor", mock.Anything, "author-1", 0, testPageSize).Return([]models.Post{}, nil)

		svc := newPostServiceForTest(postRepo, nil, userRepo, followRepo, nil)

		page, err := svc.Profile(context.Background(), "leo", "", 1)
		assert.NoError(t, err)
		assert.False(t, page.Following)
		followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := newPostServiceForTest(new(MockPostRepository), nil, userRepo, nil, nil)

		_, err := svc.Profile(context.Background(), "ghost", "", 1)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGetDetail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		commentRepo := new(MockCommentRepository)

		post := makePosts(1)[0]
		postRepo.On("GetByID", mock.Anything, int64(1)).Return(&post, nil)
		postRepo.On("CountByAuthor", mock.Anything, "author-1").Return(int64(5), nil)
		commentRepo.On("ListByPost", mock.Anything, int64(1)).Return([]models.Comment{
			{ID: 1, PostID: 1, Text: "hi", Author: models.User{Username: "anna"}},
		}, nil)

		svc := newPostServiceForTest(postRepo, nil, nil, nil, commentRepo)

		detail, err := svc.GetDetail(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), detail.PostCount)
		assert.Len(t, detail.Comments, 1)
		assert.Equal(t, "anna", detail.Comments[0].Username)
		// the blank comment form is part of the page context
		assert.Empty(t, detail.Form.Text)
	})

	t.Run("UnknownID", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostServiceForTest(postRepo, nil, nil, nil, nil)

		_, err := svc.GetDetail(context.Background(), 404)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestCreate_AttributesAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)

	var created *models.Post
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Post)
			created.ID = 42
		}).Return(nil)
	saved := models.Post{ID: 42, Text: "hello", AuthorID: "user-1",
		Author: models.User{ID: "user-1", Username: "leo"}}
	postRepo.On("GetByID", mock.Anything, int64(42)).Return(&saved, nil)

	svc := newPostServiceForTest(postRepo, new(MockGroupRepository), nil, nil, nil)

	resp, err := svc.Create(context.Background(), "user-1", &dto.PostForm{Text: "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", created.AuthorID)
	assert.Equal(t, "leo", resp.Author.Username)
}

func TestCreate_UnknownGroup(t *testing.T) {
	groupRepo := new(MockGroupRepository)
	groupRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := newPostServiceForTest(new(MockPostRepository), groupRepo, nil, nil, nil)

	groupID := int64(9)
	_, err := svc.Create(context.Background(), "user-1", &dto.PostForm{Text: "hello", Group: &groupID})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestEdit_NonAuthorLeavesPostUntouched(t *testing.T) {
	postRepo := new(MockPostRepository)

	post := makePosts(1)[0]
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&post, nil)

	svc := newPostServiceForTest(postRepo, nil, nil, nil, nil)

	_, err := svc.Edit(context.Background(), 1, "intruder", &dto.PostForm{Text: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)
	assert.Equal(t, "post 1", post.Text)
	postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEdit_AuthorUpdatesInPlace(t *testing.T) {
	postRepo := new(MockPostRepository)

	post := makePosts(1)[0]
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(&post, nil)
	postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.ID == 1 && p.Text == "edited"
	})).Return(nil)

	svc := newPostServiceForTest(postRepo, new(MockGroupRepository), nil, nil, nil)

	resp, err := svc.Edit(context.Background(), 1, "author-1", &dto.PostForm{Text: "edited"})
	assert.NoError(t, err)
	assert.Equal(t, "edited", resp.Text)
	postRepo.AssertExpectations(t)
}
