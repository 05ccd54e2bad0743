// Package server implements an in-memory stub of the meme api. It exists so
// the client stack has a real backend to run against in development and in
// integration tests; it is not a production service.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/souhailmerroun/memefeed/model"
	"github.com/souhailmerroun/memefeed/server/middlewares"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

const tokenTTL = 24 * time.Hour

// memeJSON is the wire shape of a meme. commentsCount is served as a numeric
// string, reproducing the quirk of the real backend that clients must
// coerce.
type memeJSON struct {
	Id            string          `json:"id"`
	PictureUrl    string          `json:"pictureUrl"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	AuthorID      string          `json:"authorId"`
	CommentsCount string          `json:"commentsCount"`
	Captions      []model.Caption `json:"texts"`
}

type Server struct {
	store  *Store
	secret []byte
}

func New(store *Store, secret []byte) *Server {
	return &Server{store: store, secret: secret}
}

// Register attaches all api routes to the given engine. Everything except
// login sits behind the JWT middleware.
func (s *Server) Register(router *gin.Engine) {
	router.POST("/authentication/login", s.login)

	authed := router.Group("/", middlewares.JWT(s.secret))
	authed.GET("/memes", s.listMemes)
	authed.POST("/memes", s.createMeme)
	authed.GET("/memes/:id/comments", s.listComments)
	authed.POST("/memes/:id/comments", s.createComment)
	authed.GET("/users/:id", s.getUser)
}

func (s *Server) login(c *gin.Context) {
	var payload struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	user, ok := s.store.Authenticate(payload.Username, payload.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "bad credentials"})
		return
	}

	token, err := s.mintToken(user.Id)
	if err != nil {
		Logger.Log.WithError(err).Error("failed to mint token")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "token minting failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jwt": token})
}

func (s *Server) listMemes(c *gin.Context) {
	page := pageParam(c)
	memes, total := s.store.ListMemes(page)

	results := make([]memeJSON, 0, len(memes))
	for _, meme := range memes {
		results = append(results, s.toMemeJSON(meme))
	}
	c.JSON(http.StatusOK, gin.H{
		"results":  results,
		"pageSize": PageSize,
		"total":    total,
	})
}

func (s *Server) listComments(c *gin.Context) {
	memeID := c.Param("id")
	page := pageParam(c)
	comments, total := s.store.ListComments(memeID, page)

	if comments == nil {
		comments = []*model.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{
		"results":  comments,
		"pageSize": PageSize,
		"total":    total,
	})
}

func (s *Server) createComment(c *gin.Context) {
	var payload struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	comment, ok := s.store.AddComment(c.Param("id"), c.GetString(middlewares.UserIDKey), payload.Content)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"msg": "no such meme"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) createMeme(c *gin.Context) {
	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "picture is required"})
		return
	}

	var captions []model.Caption
	if texts := c.PostForm("texts"); texts != "" {
		if err := json.Unmarshal([]byte(texts), &captions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "texts must be a json array"})
			return
		}
	}

	// the stub does not persist the picture; it only derives a plausible url
	meme := s.store.AddMeme(
		c.GetString(middlewares.UserIDKey),
		"https://memes.local/pictures/"+file.Filename,
		c.PostForm("description"),
		captions,
		time.Now().UTC(),
	)
	c.JSON(http.StatusCreated, s.toMemeJSON(meme))
}

func (s *Server) getUser(c *gin.Context) {
	user, ok := s.store.GetUser(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"msg": "no such user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) toMemeJSON(meme *model.RawMeme) memeJSON {
	return memeJSON{
		Id:            meme.Id,
		PictureUrl:    meme.PictureUrl,
		Description:   meme.Description,
		CreatedAt:     meme.CreatedAt,
		AuthorID:      meme.AuthorID,
		CommentsCount: strconv.Itoa(s.store.CommentCount(meme.Id)),
		Captions:      meme.Captions,
	}
}

func (s *Server) mintToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
