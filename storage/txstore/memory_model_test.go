package txstore_test

import (
	"testing"

	"github.com/jrife/txstore/storage/txstore"
	"github.com/jrife/txstore/storage/txstore/model"
	command_gen "github.com/jrife/txstore/storage/txstore/model/gen"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
)

func TestMemoryStoreSystem(t *testing.T) {
	var cbCommands = &commands.ProtoCommands{
		NewSystemUnderTestFunc: func(initialState commands.State) commands.SystemUnderTest {
			return txstore.New[string, int]()
		},
		InitialStateGen: gopter.CombineGens().Map(func([]interface{}) *model.StoreModel {
			return model.NewStoreModel()
		}),
		InitialPreConditionFunc: func(state commands.State) bool {
			return true
		},
		GenCommandFunc: func(state commands.State) gopter.Gen {
			return command_gen.Commands()
		},
	}

	parameters := gopter.DefaultTestParametersWithSeed(1234)
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	properties.Property("", commands.Prop(cbCommands))
	properties.TestingRun(t)
}
