package gen

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/leanovate/gopter/gen"
)

// Keys is the key space used by generated commands. It is kept
// small so that transactions frequently shadow each other's writes.
var Keys = []string{"a", "b", "c", "d", "e"}

// Commands returns a generator that generates a range
// of store commands. Set, Commit and Rollback are generated
// regardless of whether a transaction is open.
func Commands() gopter.Gen {
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 3, Gen: BeginCommand()},
		{Weight: 5, Gen: SetCommand()},
		{Weight: 4, Gen: GetCommand()},
		{Weight: 1, Gen: CountCommand()},
		{Weight: 1, Gen: CommitCommand()},
		{Weight: 2, Gen: RollbackCommand()},
	})
}

// BeginCommand returns a generator that generates begin commands
func BeginCommand() gopter.Gen {
	return gen.Const(beginCommand{})
}

// SetCommand returns a generator that generates set commands.
// Values are drawn from a narrow range around zero so that
// zero values get written often.
func SetCommand() gopter.Gen {
	return gopter.CombineGens(Key(), gen.IntRange(-2, 2)).Map(func(values []interface{}) commands.Command {
		return setCommand{key: values[0].(string), value: values[1].(int)}
	})
}

// GetCommand returns a generator that generates get commands
func GetCommand() gopter.Gen {
	return Key().Map(func(key string) commands.Command {
		return getCommand{key: key}
	})
}

// CountCommand returns a generator that generates count commands
func CountCommand() gopter.Gen {
	return gen.Const(countCommand{})
}

// CommitCommand returns a generator that generates commit commands
func CommitCommand() gopter.Gen {
	return gen.Const(commitCommand{})
}

// RollbackCommand returns a generator that generates rollback commands
func RollbackCommand() gopter.Gen {
	return gen.Const(rollbackCommand{})
}

// Key returns a generator that picks a key from Keys
func Key() gopter.Gen {
	keys := make([]interface{}, len(Keys))

	for i, key := range Keys {
		keys[i] = key
	}

	return gen.OneConstOf(keys...)
}
