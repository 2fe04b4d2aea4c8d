package service

import (
	"context"
	"errors"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAuthor     = errors.New("requester is not the post author")
)

type PostService interface {
	ListIndex(ctx context.Context, page int) (*dto.PaginatedPostResponse, error)
	ListByGroup(ctx context.Context, slug string, page int) (*dto.GroupPageResponse, error)
	Profile(ctx context.Context, username, viewerID string, page int) (*dto.ProfilePageResponse, error)
	ListFeed(ctx context.Context, userID string, page int) (*dto.PaginatedPostResponse, error)
	GetDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error)
	Create(ctx context.Context, userID string, form *dto.PostForm) (*dto.PostResponse, error)
	Edit(ctx context.Context, postID int64, userID string, form *dto.PostForm) (*dto.PostResponse, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	commentRepo repository.CommentRepository
	pageSize    int
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	commentRepo repository.CommentRepository,
	pageSize int,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
		pageSize:    pageSize,
	}
}

// ListIndex retrieves one page of all posts, newest first.
func (s *postService) ListIndex(ctx context.Context, page int) (*dto.PaginatedPostResponse, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page = dto.NormalizePage(page, dto.PageCount(total, s.pageSize))
	posts, err := s.postRepo.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	return dto.NewPaginatedPostResponse(posts, page, s.pageSize, total), nil
}

// ListByGroup retrieves the group page context for a slug.
func (s *postService) ListByGroup(ctx context.Context, slug string, page int) (*dto.GroupPageResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	page = dto.NormalizePage(page, dto.PageCount(total, s.pageSize))
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.GroupPageResponse{
		Group: *dto.FromModelToGroupResponse(group),
		Posts: *dto.NewPaginatedPostResponse(posts, page, s.pageSize, total),
	}, nil
}

// Profile retrieves the author page context. viewerID is empty for anonymous
// visitors, the following flag is only computed for authenticated viewers.
func (s *postService) Profile(ctx context.Context, username, viewerID string, page int) (*dto.ProfilePageResponse, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	page = dto.NormalizePage(page, dto.PageCount(total, s.pageSize))
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ProfilePageResponse{
		Author: dto.AuthorResponse{
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
		PostCount: total,
		Following: following,
		Posts:     *dto.NewPaginatedPostResponse(posts, page, s.pageSize, total),
	}, nil
}

// ListFeed retrieves one page of posts from authors the user follows.
func (s *postService) ListFeed(ctx context.Context, userID string, page int) (*dto.PaginatedPostResponse, error) {
	total, err := s.postRepo.CountFeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	page = dto.NormalizePage(page, dto.PageCount(total, s.pageSize))
	posts, err := s.postRepo.ListFeed(ctx, userID, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	return dto.NewPaginatedPostResponse(posts, page, s.pageSize, total), nil
}

// GetDetail retrieves the post detail page context: the post, its author's
// total post count, all comments and a blank comment form.
func (s *postService) GetDetail(ctx context.Context, postID int64) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return &dto.PostDetailResponse{
		Post:      *dto.FromModelToPostResponse(post),
		PostCount: postCount,
		Comments:  commentResponses,
		Form:      dto.CommentForm{},
	}, nil
}

// Create persists a new post attributed to the given user. The form is
// expected to be validated by the caller.
func (s *postService) Create(ctx context.Context, userID string, form *dto.PostForm) (*dto.PostResponse, error) {
	if form.Group != nil {
		if _, err := s.groupRepo.GetByID(ctx, *form.Group); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
	}

	post := form.ToModel()
	post.AuthorID = userID

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with author and group data
	post, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}

// Edit validates authorship and persists the changed fields in place.
func (s *postService) Edit(ctx context.Context, postID int64, userID string, form *dto.PostForm) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	if form.Group != nil {
		if _, err := s.groupRepo.GetByID(ctx, *form.Group); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
	}

	form.Apply(post)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	post, err = s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToPostResponse(post), nil
}
