package gen

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/txstore/storage/txstore/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
)

type result struct {
	response model.Response
	store    Store
}

type command struct {
}

func (command command) sut(sut commands.SystemUnderTest) Store {
	return sut.(Store)
}

// next copies the model so that states computed while
// generating commands are never mutated by later runs.
func (command command) next(state commands.State) *model.StoreModel {
	return state.(*model.StoreModel).Clone()
}

func (command command) PreCondition(state commands.State) bool {
	return true
}

func (command command) PostCondition(state commands.State, r commands.Result) *gopter.PropResult {
	storeModel := state.(*model.StoreModel)
	res := r.(result)

	if diff := cmp.Diff(storeModel.LastResponse(), res.response); diff != "" {
		fmt.Printf("Diff: %s\n", diff)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}

	if diff := StoreModelDiff(res.store, storeModel); diff != "" {
		fmt.Printf("Diff: %s\n", diff)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}

	return &gopter.PropResult{Status: gopter.PropTrue}
}

type beginCommand struct {
	command
}

func (command beginCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	store.Begin()
	return result{store: store}
}

func (command beginCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplyBegin()
	return next
}

func (command beginCommand) String() string {
	return "Begin()"
}

type setCommand struct {
	command
	key   string
	value int
}

func (command setCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	err := store.Set(command.key, command.value)
	return result{response: response(0, false, 0, err), store: store}
}

func (command setCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplySet(command.key, command.value)
	return next
}

func (command setCommand) String() string {
	return fmt.Sprintf("Set(%q, %d)", command.key, command.value)
}

type getCommand struct {
	command
	key string
}

func (command getCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	value, ok := store.Get(command.key)
	return result{response: response(value, ok, 0, nil), store: store}
}

func (command getCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplyGet(command.key)
	return next
}

func (command getCommand) String() string {
	return fmt.Sprintf("Get(%q)", command.key)
}

type countCommand struct {
	command
}

func (command countCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	return result{response: response(0, false, store.Count(), nil), store: store}
}

func (command countCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplyCount()
	return next
}

func (command countCommand) String() string {
	return "Count()"
}

type commitCommand struct {
	command
}

func (command commitCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	err := store.Commit()
	return result{response: response(0, false, 0, err), store: store}
}

func (command commitCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplyCommit()
	return next
}

func (command commitCommand) String() string {
	return "Commit()"
}

type rollbackCommand struct {
	command
}

func (command rollbackCommand) Run(sut commands.SystemUnderTest) commands.Result {
	store := command.sut(sut)
	err := store.Rollback()
	return result{response: response(0, false, 0, err), store: store}
}

func (command rollbackCommand) NextState(state commands.State) commands.State {
	next := command.next(state)
	next.ApplyRollback()
	return next
}

func (command rollbackCommand) String() string {
	return "Rollback()"
}
