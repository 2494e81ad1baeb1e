package repository

import (
	"context"
	"time"

	"github.com/yukikurage/onestep-api/internal/models"
	"github.com/yukikurage/onestep-api/internal/ordering"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func (suite *OrderedRepositoryTestSuite) createSubTodo(todoID uint64, content, rank string, date *time.Time) *models.SubTodo {
	sub := &models.SubTodo{TodoID: todoID, Content: content, Rank: rank, Date: date}
	suite.Require().NoError(suite.repos.SubTodos.Save(context.Background(), sub))
	return sub
}

func (suite *OrderedRepositoryTestSuite) TestListByDateRange() {
	ctx := context.Background()
	inRange := suite.createTodo("in", "0|i00000:")
	inRange.Date = day("2024-05-02")
	suite.Require().NoError(suite.repos.Todos.Save(ctx, inRange))

	first := suite.createTodo("first", "0|hzzzzz:")
	first.Date = day("2024-05-01")
	suite.Require().NoError(suite.repos.Todos.Save(ctx, first))

	outOfRange := suite.createTodo("out", "0|i00001:")
	outOfRange.Date = day("2024-06-01")
	suite.Require().NoError(suite.repos.Todos.Save(ctx, outOfRange))

	suite.createTodo("undated", "0|i00002:")

	suite.createSubTodo(inRange.ID, "dated", "0|hzzzzz:", day("2024-05-02"))
	suite.createSubTodo(inRange.ID, "undated", "0|i00000:", nil)

	todos, err := suite.repos.Todos.ListByDateRange(ctx, suite.user.ID, *day("2024-05-01"), *day("2024-05-31"))
	suite.Require().NoError(err)
	suite.Require().Len(todos, 2)
	suite.Equal(first.ID, todos[0].ID)
	suite.Equal(inRange.ID, todos[1].ID)
	suite.Require().Len(todos[1].SubTodos, 1)
	suite.Equal("dated", todos[1].SubTodos[0].Content)
}

func (suite *OrderedRepositoryTestSuite) TestListInbox() {
	ctx := context.Background()
	undated := suite.createTodo("undated", "0|i00000:")

	dated := suite.createTodo("dated", "0|hzzzzz:")
	dated.Date = day("2024-05-01")
	suite.Require().NoError(suite.repos.Todos.Save(ctx, dated))

	datedWithOpenStep := suite.createTodo("dated with open step", "0|i00001:")
	datedWithOpenStep.Date = day("2024-05-01")
	suite.Require().NoError(suite.repos.Todos.Save(ctx, datedWithOpenStep))
	suite.createSubTodo(datedWithOpenStep.ID, "open", "0|hzzzzz:", nil)
	suite.createSubTodo(datedWithOpenStep.ID, "scheduled", "0|i00000:", day("2024-05-01"))

	deletedStep := suite.createSubTodo(dated.ID, "deleted", "0|hzzzzz:", nil)
	deletedStep.MarkDeleted(time.Now())
	suite.Require().NoError(suite.repos.SubTodos.Save(ctx, deletedStep))

	todos, err := suite.repos.Todos.ListInbox(ctx, suite.user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(todos, 2)
	suite.Equal(undated.ID, todos[0].ID)
	suite.Equal(datedWithOpenStep.ID, todos[1].ID)
	suite.Require().Len(todos[1].SubTodos, 1)
	suite.Equal("open", todos[1].SubTodos[0].Content)
}

func (suite *OrderedRepositoryTestSuite) TestSubTodoFindOwned() {
	ctx := context.Background()
	todo := suite.createTodo("parent", "0|hzzzzz:")
	sub := suite.createSubTodo(todo.ID, "step", "0|hzzzzz:", nil)

	found, err := suite.repos.SubTodos.FindOwned(ctx, suite.user.ID, sub.ID)
	suite.Require().NoError(err)
	suite.Equal(sub.ID, found.ID)

	_, err = suite.repos.SubTodos.FindOwned(ctx, suite.user.ID+1, sub.ID)
	suite.ErrorIs(err, ordering.ErrNotFound)

	todo.MarkDeleted(time.Now())
	suite.Require().NoError(suite.repos.Todos.Save(ctx, todo))

	_, err = suite.repos.SubTodos.FindOwned(ctx, suite.user.ID, sub.ID)
	suite.ErrorIs(err, ordering.ErrNotFound)
}

func (suite *OrderedRepositoryTestSuite) TestSubTodoListByTodoIDs() {
	ctx := context.Background()
	a := suite.createTodo("a", "0|hzzzzz:")
	b := suite.createTodo("b", "0|i00000:")

	suite.createSubTodo(b.ID, "b2", "0|i00000:", nil)
	suite.createSubTodo(a.ID, "a2", "0|i00000:", nil)
	suite.createSubTodo(b.ID, "b1", "0|hzzzzz:", nil)
	suite.createSubTodo(a.ID, "a1", "0|hzzzzz:", nil)

	subs, err := suite.repos.SubTodos.ListByTodoIDs(ctx, []uint64{a.ID, b.ID})
	suite.Require().NoError(err)

	contents := make([]string, len(subs))
	for i, s := range subs {
		contents[i] = s.Content
	}
	suite.Equal([]string{"a1", "a2", "b1", "b2"}, contents)

	empty, err := suite.repos.SubTodos.ListByTodoIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}
