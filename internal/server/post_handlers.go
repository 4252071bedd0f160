package server

import (
	"likeme/internal/models"
	"likeme/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Titulo      string `json:"titulo"`
	URL         string `json:"url"`
	Descripcion string `json:"descripcion"`
}

// DeletePostResponse confirms a deletion and echoes the removed post.
type DeletePostResponse struct {
	Message string       `json:"message"`
	Post    *models.Post `json:"post"`
}

// GetPosts handles GET /posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(models.MsgFieldsRequired))
		}
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Titulo:      req.Titulo,
		URL:         req.URL,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles PUT /posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.LikePost(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.DeletePost(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(DeletePostResponse{Message: models.MsgPostDeleted, Post: post})
}
