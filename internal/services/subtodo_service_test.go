package services

import (
	"strings"

	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
)

func subTodoContents(subTodos []models.SubTodo) []string {
	contents := make([]string, len(subTodos))
	for i, subTodo := range subTodos {
		contents[i] = subTodo.Content
	}
	return contents
}

func (suite *ServiceTestSuite) listSubTodos(todoID uint64) []string {
	subTodos, err := suite.subTodos.ListSubTodos(suite.ctx, suite.user.ID, todoID)
	suite.Require().NoError(err)
	return subTodoContents(subTodos)
}

func (suite *ServiceTestSuite) TestCreateSubTodos_KeepsBatchOrder() {
	todo := suite.createTodo("parent")

	created := suite.createSubTodos(todo.ID, "one", "two", "three")
	suite.Equal("0|hzzzzz:", created[0].Rank)
	suite.Equal("0|i00000:", created[1].Rank)
	suite.Equal("0|i00001:", created[2].Rank)

	suite.createSubTodos(todo.ID, "four")
	suite.Equal([]string{"one", "two", "three", "four"}, suite.listSubTodos(todo.ID))
}

func (suite *ServiceTestSuite) TestCreateSubTodos_Validation() {
	todo := suite.createTodo("parent")

	_, err := suite.subTodos.CreateSubTodos(suite.ctx, suite.user.ID, todo.ID, nil)
	suite.ErrorIs(err, ErrEmptyBatch)

	_, err = suite.subTodos.CreateSubTodos(suite.ctx, suite.user.ID, todo.ID, []CreateSubTodoInput{
		{Content: "fine"},
		{Content: strings.Repeat("x", 51)},
	})
	suite.ErrorIs(err, ErrContentTooLong)

	_, err = suite.subTodos.CreateSubTodos(suite.ctx, suite.user.ID, 9999, []CreateSubTodoInput{{Content: "lost"}})
	suite.ErrorIs(err, ErrTodoNotFound)

	suite.Empty(suite.listSubTodos(todo.ID))
}

func (suite *ServiceTestSuite) TestSubTodoGroupsAreIndependent() {
	first := suite.createTodo("first")
	second := suite.createTodo("second")

	a := suite.createSubTodos(first.ID, "a")
	b := suite.createSubTodos(second.ID, "b")

	suite.Equal(a[0].Rank, b[0].Rank)
}

func (suite *ServiceTestSuite) TestMoveSubTodo() {
	todo := suite.createTodo("parent")
	created := suite.createSubTodos(todo.ID, "one", "two", "three")

	_, err := suite.subTodos.MoveSubTodo(suite.ctx, suite.user.ID, created[2].ID, MoveInput{
		PrevID: &created[0].ID,
		NextID: &created[1].ID,
	})
	suite.Require().NoError(err)
	suite.Equal([]string{"one", "three", "two"}, suite.listSubTodos(todo.ID))

	_, err = suite.subTodos.MoveSubTodo(suite.ctx, suite.user.ID, created[0].ID, MoveInput{PrevID: &created[1].ID})
	suite.Require().NoError(err)
	suite.Equal([]string{"three", "two", "one"}, suite.listSubTodos(todo.ID))
}

func (suite *ServiceTestSuite) TestMoveSubTodo_AnchorUnderAnotherTodo() {
	first := suite.createTodo("first")
	second := suite.createTodo("second")
	a := suite.createSubTodos(first.ID, "a")
	b := suite.createSubTodos(second.ID, "b")

	_, err := suite.subTodos.MoveSubTodo(suite.ctx, suite.user.ID, a[0].ID, MoveInput{NextID: &b[0].ID})
	suite.ErrorIs(err, ErrSubTodoNotFound)

	_, err = suite.subTodos.MoveSubTodo(suite.ctx, suite.user.ID, a[0].ID, MoveInput{})
	suite.ErrorIs(err, ordering.ErrAmbiguousMove)
}

func (suite *ServiceTestSuite) TestUpdateSubTodo_ReparentAppendsAtBottom() {
	first := suite.createTodo("first")
	second := suite.createTodo("second")
	moving := suite.createSubTodos(first.ID, "moving", "staying")
	suite.createSubTodos(second.ID, "x", "y")

	updated, err := suite.subTodos.UpdateSubTodo(suite.ctx, suite.user.ID, moving[0].ID, UpdateSubTodoInput{
		TodoID: &second.ID,
	})
	suite.Require().NoError(err)
	suite.Equal(second.ID, updated.TodoID)
	suite.Equal("0|i00001:", updated.Rank)

	suite.Equal([]string{"staying"}, suite.listSubTodos(first.ID))
	suite.Equal([]string{"x", "y", "moving"}, suite.listSubTodos(second.ID))
}

func (suite *ServiceTestSuite) TestUpdateSubTodo_Fields() {
	todo := suite.createTodo("parent")
	created := suite.createSubTodos(todo.ID, "draft")

	updated, err := suite.subTodos.UpdateSubTodo(suite.ctx, suite.user.ID, created[0].ID, UpdateSubTodoInput{
		Content:     ptr("final"),
		Date:        date("2024-09-03"),
		DueTime:     ptr("18:00"),
		IsCompleted: ptr(true),
	})
	suite.Require().NoError(err)
	suite.Equal("final", updated.Content)
	suite.Equal("2024-09-03", updated.Date.Format("2006-01-02"))
	suite.Equal("18:00:00", *updated.DueTime)
	suite.True(updated.IsCompleted)

	_, err = suite.subTodos.UpdateSubTodo(suite.ctx, suite.user.ID, created[0].ID, UpdateSubTodoInput{TodoID: ptr(uint64(9999))})
	suite.ErrorIs(err, ErrTodoNotFound)
}

func (suite *ServiceTestSuite) TestSubTodo_OtherUserCannotTouch() {
	todo := suite.createTodo("parent")
	created := suite.createSubTodos(todo.ID, "private")

	bob := suite.createUser("bob")

	_, err := suite.subTodos.UpdateSubTodo(suite.ctx, bob.ID, created[0].ID, UpdateSubTodoInput{Content: ptr("mine")})
	suite.ErrorIs(err, ErrSubTodoNotFound)

	_, err = suite.subTodos.DeleteSubTodo(suite.ctx, bob.ID, created[0].ID)
	suite.ErrorIs(err, ErrSubTodoNotFound)

	_, err = suite.subTodos.ListSubTodos(suite.ctx, bob.ID, todo.ID)
	suite.ErrorIs(err, ErrTodoNotFound)
}

func (suite *ServiceTestSuite) TestDeleteSubTodo() {
	todo := suite.createTodo("parent")
	created := suite.createSubTodos(todo.ID, "one", "two")

	deleted, err := suite.subTodos.DeleteSubTodo(suite.ctx, suite.user.ID, created[0].ID)
	suite.Require().NoError(err)
	suite.True(deleted.DeletedAt.Valid)
	suite.Equal(created[0].Rank, deleted.Rank)

	suite.Equal([]string{"two"}, suite.listSubTodos(todo.ID))

	_, err = suite.subTodos.DeleteSubTodo(suite.ctx, suite.user.ID, created[0].ID)
	suite.ErrorIs(err, ErrSubTodoNotFound)
}
