package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fakeComments 按需返回预设结果，并记录收到的参数
type fakeComments struct {
	service.CommentService
	createErr   error
	approvalErr error
	deleteErr   error
	gotMeta     dto.RequestMeta
	gotApproved *bool
}

func (f *fakeComments) CreateComment(_ context.Context, req *dto.CreateCommentRequest, meta dto.RequestMeta) (*vo.CommentVO, error) {
	f.gotMeta = meta
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &vo.CommentVO{ID: 7, PostID: req.PostID, AuthorName: req.AuthorName}, nil
}

func (f *fakeComments) SetApproval(_ context.Context, _ uint64, approved bool) error {
	f.gotApproved = &approved
	return f.approvalErr
}

func (f *fakeComments) DeleteComment(context.Context, uint64) error { return f.deleteErr }

type fakeGate struct {
	service.ModerationGate
	tree []*vo.CommentTreeNode
	err  error
}

func (g *fakeGate) PublicComments(context.Context, uint64) ([]*vo.CommentTreeNode, error) {
	return g.tree, g.err
}

func newLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return logger
}

func noop(c *gin.Context) { c.Next() }

func newPublicRouter(t *testing.T, comments service.CommentService, gate service.ModerationGate) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewCommentController(comments, gate, nil, nil, newLogger(t))
	ctrl.RegisterRoutes(r.Group("/api/v1/comment"), noop)
	return r
}

func newAdminRouter(t *testing.T, comments service.CommentService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewCommentAdminController(comments, &fakeGate{}, nil, nil, newLogger(t))
	ctrl.RegisterRoutes(r.Group("/api/v1/comment/admin"))
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "controller-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

const validBody = `{"post_id":1,"author_name":"小明","author_email":"a@example.com","content":"hi"}`

func TestCreateComment_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"malformed json", `{"post_id":`, nil, http.StatusBadRequest, int(response.ErrCodeClientInvalidInput)},
		{"binding rejects email", `{"post_id":1,"author_name":"小明","author_email":"nope","content":"hi"}`, nil, http.StatusBadRequest, int(response.ErrCodeClientInvalidInput)},
		{"binding rejects long content", `{"post_id":1,"author_name":"小明","author_email":"a@example.com","content":"` + strings.Repeat("长", 1001) + `"}`, nil, http.StatusBadRequest, int(response.ErrCodeClientInvalidInput)},
		{"validation", validBody, myErrors.NewValidationError("content", "不能为空"), http.StatusBadRequest, int(response.ErrCodeClientInvalidInput)},
		{"not found", validBody, commonerrors.ErrRepoNotFound, http.StatusNotFound, int(response.ErrCodeClientResourceNotFound)},
		{"internal", validBody, errors.New("dial tcp 10.0.0.5:3306: connection refused"), http.StatusInternalServerError, int(response.ErrCodeServerInternal)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newPublicRouter(t, &fakeComments{createErr: tc.err}, &fakeGate{})
			w, env := do(t, r, http.MethodPost, "/api/v1/comment/comments", tc.body)
			assert.Equal(t, tc.wantHTTP, w.Code)
			assert.Equal(t, tc.wantCode, env.Code)
			assert.NotContains(t, env.Message, "10.0.0.5", "内部错误细节不应返回给客户端")
		})
	}
}

func TestCreateComment_Success(t *testing.T) {
	comments := &fakeComments{}
	r := newPublicRouter(t, comments, &fakeGate{})

	w, env := do(t, r, http.MethodPost, "/api/v1/comment/comments", validBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	var got vo.CommentVO
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, uint64(7), got.ID)
	assert.Equal(t, "controller-test", comments.gotMeta.UserAgent)
	assert.NotEmpty(t, comments.gotMeta.IP)
}

func TestListPostComments(t *testing.T) {
	tree := []*vo.CommentTreeNode{{CommentVO: vo.CommentVO{ID: 1}, Replies: []*vo.CommentVO{{ID: 2}}}}
	r := newPublicRouter(t, &fakeComments{}, &fakeGate{tree: tree})

	w, env := do(t, r, http.MethodGet, "/api/v1/comment/posts/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []*vo.CommentTreeNode
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Len(t, got[0].Replies, 1)

	w, _ = do(t, r, http.MethodGet, "/api/v1/comment/posts/abc/comments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/comment/posts/0/comments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newPublicRouter(t, &fakeComments{}, &fakeGate{err: errors.New("boom")})
	w, _ = do(t, r, http.MethodGet, "/api/v1/comment/posts/1/comments", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSetApproval(t *testing.T) {
	comments := &fakeComments{}
	r := newAdminRouter(t, comments)

	w, env := do(t, r, http.MethodPut, "/api/v1/comment/admin/comments/3/approval", `{"approved":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	require.NotNil(t, comments.gotApproved)
	assert.True(t, *comments.gotApproved)

	w, _ = do(t, r, http.MethodPut, "/api/v1/comment/admin/comments/3/approval", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	comments.approvalErr = myErrors.NewValidationError("approved", "已通过的评论不能退回待审核")
	w, env = do(t, r, http.MethodPut, "/api/v1/comment/admin/comments/3/approval", `{"approved":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "approved")

	comments.approvalErr = commonerrors.ErrRepoNotFound
	w, _ = do(t, r, http.MethodPut, "/api/v1/comment/admin/comments/3/approval", `{"approved":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteComment(t *testing.T) {
	comments := &fakeComments{}
	r := newAdminRouter(t, comments)

	w, _ := do(t, r, http.MethodDelete, "/api/v1/comment/admin/comments/3", "")
	assert.Equal(t, http.StatusOK, w.Code)

	comments.deleteErr = commonerrors.ErrRepoNotFound
	w, _ = do(t, r, http.MethodDelete, "/api/v1/comment/admin/comments/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/comment/admin/comments/-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
