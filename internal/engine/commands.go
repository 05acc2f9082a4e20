package engine

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/eternalApril/lunakv/internal/datatype"
	"github.com/eternalApril/lunakv/internal/expiry"
)

// request carries the arguments of one command, without the command name
type request struct {
	args []string
}

type command interface {
	execute(req *request) (interface{}, error)
}

type commandFunc func(req *request) (interface{}, error)

func (c commandFunc) execute(req *request) (interface{}, error) {
	return c(req)
}

type commandMetadata struct {
	name    string
	arity   int      // Arity includes the command name itself, negative means "at least"
	flags   []string // readonly, write, fast
	group   string
	summary string
}

type registeredCommand struct {
	meta commandMetadata
	command
}

// CommandInfo describes a registered command
type CommandInfo struct {
	Name    string
	Arity   int
	Flags   []string
	Group   string
	Summary string
}

// Commands returns the registered commands sorted by name
func (e *Engine) Commands() []CommandInfo {
	out := make([]CommandInfo, 0, len(e.commands))
	for _, c := range e.commands {
		out = append(out, CommandInfo{
			Name:    c.meta.name,
			Arity:   c.meta.arity,
			Flags:   append([]string(nil), c.meta.flags...),
			Group:   c.meta.group,
			Summary: c.meta.summary,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute finds the command by name (case-insensitive) and executes it with the passed arguments.
// Replies are nil (absent), string, int, float64, []string or map[string]string
func (e *Engine) Execute(name string, args ...string) (interface{}, error) {
	name = strings.ToUpper(name)

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", name),
			zap.Int("args_count", len(args)),
		)
	}

	cmd, ok := e.commands[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%s", name)
	}

	if !arityMatches(cmd.meta.arity, len(args)+1) {
		return nil, errors.Wrapf(ErrWrongArity, "%s", name)
	}

	return cmd.execute(&request{args: args})
}

func arityMatches(arity, n int) bool {
	if arity < 0 {
		return n >= -arity
	}
	return n == arity
}

var (
	readFast  = []string{"readonly", "fast"}
	read      = []string{"readonly"}
	writeFast = []string{"write", "fast"}
	write     = []string{"write"}
)

// registerCommands fills the registry with the supported commands
func (e *Engine) registerCommands() {
	e.register("PING", commandMetadata{arity: -1, flags: []string{"fast"}, group: "connection", summary: "Ping the engine."}, commandFunc(ping))

	// generic
	e.register("DEL", commandMetadata{arity: -2, flags: write, group: "generic", summary: "Delete keys."}, commandFunc(e.delCommand))
	e.register("EXISTS", commandMetadata{arity: -2, flags: readFast, group: "generic", summary: "Count existing keys."}, commandFunc(e.existsCommand))
	e.register("EXPIRE", commandMetadata{arity: 3, flags: writeFast, group: "generic", summary: "Set a key's time to live in seconds."}, commandFunc(e.expireCommand(time.Second)))
	e.register("PEXPIRE", commandMetadata{arity: 3, flags: writeFast, group: "generic", summary: "Set a key's time to live in milliseconds."}, commandFunc(e.expireCommand(time.Millisecond)))
	e.register("TTL", commandMetadata{arity: 2, flags: readFast, group: "generic", summary: "Get the time to live for a key in seconds."}, commandFunc(e.ttlCommand(time.Second)))
	e.register("PTTL", commandMetadata{arity: 2, flags: readFast, group: "generic", summary: "Get the time to live for a key in milliseconds."}, commandFunc(e.ttlCommand(time.Millisecond)))
	e.register("PERSIST", commandMetadata{arity: 2, flags: writeFast, group: "generic", summary: "Remove the expiration from a key."}, commandFunc(e.persistCommand))
	e.register("TYPE", commandMetadata{arity: 2, flags: readFast, group: "generic", summary: "Determine the type stored at key."}, commandFunc(e.typeCommand))
	e.register("DBSIZE", commandMetadata{arity: 1, flags: readFast, group: "server", summary: "Return the number of keys."}, commandFunc(e.dbsizeCommand))
	e.register("FLUSHALL", commandMetadata{arity: 1, flags: write, group: "server", summary: "Remove all keys."}, commandFunc(e.flushallCommand))

	// string
	e.register("GET", commandMetadata{arity: 2, flags: readFast, group: "string", summary: "Get the value of a key."}, commandFunc(e.getCommand))
	e.register("SET", commandMetadata{arity: -3, flags: write, group: "string", summary: "Set the string value of a key."}, commandFunc(e.setCommand))

	// list
	e.register("LPUSH", commandMetadata{arity: -3, flags: writeFast, group: "list", summary: "Prepend elements to a list."}, commandFunc(e.pushCommand(e.LeftPushAll)))
	e.register("RPUSH", commandMetadata{arity: -3, flags: writeFast, group: "list", summary: "Append elements to a list."}, commandFunc(e.pushCommand(e.RightPushAll)))
	e.register("LPOP", commandMetadata{arity: 2, flags: writeFast, group: "list", summary: "Remove and get the first element in a list."}, commandFunc(e.popCommand(e.LeftPop)))
	e.register("RPOP", commandMetadata{arity: 2, flags: writeFast, group: "list", summary: "Remove and get the last element in a list."}, commandFunc(e.popCommand(e.RightPop)))
	e.register("LRANGE", commandMetadata{arity: 4, flags: read, group: "list", summary: "Get a range of elements from a list."}, commandFunc(e.lrangeCommand))
	e.register("LLEN", commandMetadata{arity: 2, flags: readFast, group: "list", summary: "Get the length of a list."}, commandFunc(e.llenCommand))

	// hash
	e.register("HSET", commandMetadata{arity: -4, flags: writeFast, group: "hash", summary: "Set fields in a hash."}, commandFunc(e.hsetCommand))
	e.register("HGET", commandMetadata{arity: 3, flags: readFast, group: "hash", summary: "Get the value of a hash field."}, commandFunc(e.hgetCommand))
	e.register("HGETALL", commandMetadata{arity: 2, flags: read, group: "hash", summary: "Get all the fields and values in a hash."}, commandFunc(e.hgetallCommand))
	e.register("HDEL", commandMetadata{arity: -3, flags: writeFast, group: "hash", summary: "Delete hash fields."}, commandFunc(e.hdelCommand))
	e.register("HLEN", commandMetadata{arity: 2, flags: readFast, group: "hash", summary: "Get the number of fields in a hash."}, commandFunc(e.hlenCommand))

	// set
	e.register("SADD", commandMetadata{arity: -3, flags: writeFast, group: "set", summary: "Add members to a set."}, commandFunc(e.saddCommand))
	e.register("SMEMBERS", commandMetadata{arity: 2, flags: read, group: "set", summary: "Get all the members in a set."}, commandFunc(e.smembersCommand))
	e.register("SISMEMBER", commandMetadata{arity: 3, flags: readFast, group: "set", summary: "Determine if a value is a member of a set."}, commandFunc(e.sismemberCommand))
	e.register("SPOP", commandMetadata{arity: -2, flags: writeFast, group: "set", summary: "Remove and return random members from a set."}, commandFunc(e.spopCommand))
	e.register("SREM", commandMetadata{arity: -3, flags: writeFast, group: "set", summary: "Remove members from a set."}, commandFunc(e.sremCommand))
	e.register("SCARD", commandMetadata{arity: 2, flags: readFast, group: "set", summary: "Get the number of members in a set."}, commandFunc(e.scardCommand))

	// sorted set
	e.register("ZADD", commandMetadata{arity: -4, flags: writeFast, group: "sorted_set", summary: "Add members to a sorted set, or update their scores."}, commandFunc(e.zaddCommand))
	e.register("ZCOUNT", commandMetadata{arity: 4, flags: readFast, group: "sorted_set", summary: "Count the members with scores within the given values."}, commandFunc(e.zcountCommand))
	e.register("ZRANGE", commandMetadata{arity: -4, flags: read, group: "sorted_set", summary: "Return a range of members by rank."}, commandFunc(e.zrangeCommand))
	e.register("ZREM", commandMetadata{arity: -3, flags: writeFast, group: "sorted_set", summary: "Remove members from a sorted set."}, commandFunc(e.zremCommand))
	e.register("ZSCORE", commandMetadata{arity: 3, flags: readFast, group: "sorted_set", summary: "Get the score associated with a member."}, commandFunc(e.zscoreCommand))
	e.register("ZCARD", commandMetadata{arity: 2, flags: readFast, group: "sorted_set", summary: "Get the number of members in a sorted set."}, commandFunc(e.zcardCommand))
}

// decimalInt matches what parseInt accepts; cast alone would also take hex and "1.0"
var decimalInt = regexp.MustCompile(`^[+-]?[0-9]+$`)

func parseInt(s string) (int, error) {
	if !decimalInt.MatchString(s) {
		return 0, invalidArgument("value is not an integer or out of range: %q", s)
	}
	// cast parses with base 0, so leading zeros would turn 010 into octal
	sign, digits := "", strings.TrimLeft(s, "+")
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		digits = "0"
	}
	n, err := cast.ToIntE(sign + digits)
	if err != nil {
		return 0, invalidArgument("value is not an integer or out of range: %q", s)
	}
	return n, nil
}

// parseTTL reads a positive or negative count of unit, refusing counts whose duration overflows
func parseTTL(s string, unit time.Duration) (time.Duration, error) {
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if limit := math.MaxInt64 / int64(unit); int64(n) > limit || int64(n) < -limit {
		return 0, invalidArgument("invalid expire time: %q", s)
	}
	return time.Duration(n) * unit, nil
}

func parseScore(s string) (float64, error) {
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) {
		return 0, invalidArgument("value is not a valid float: %q", s)
	}
	return f, nil
}

// optional turns a (value, ok, err) lookup into a reply where absence is nil
func optional[T any](v T, ok bool, err error) (interface{}, error) {
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}

func ping(req *request) (interface{}, error) {
	switch len(req.args) {
	case 0:
		return "PONG", nil
	case 1:
		return req.args[0], nil
	default:
		return nil, errors.Wrap(ErrWrongArity, "PING")
	}
}

func (e *Engine) delCommand(req *request) (interface{}, error) {
	return e.Delete(req.args...), nil
}

func (e *Engine) existsCommand(req *request) (interface{}, error) {
	n := 0
	for _, key := range req.args {
		if e.HasKey(key) {
			n++
		}
	}
	return n, nil
}

func (e *Engine) expireCommand(unit time.Duration) commandFunc {
	return func(req *request) (interface{}, error) {
		ttl, err := parseTTL(req.args[1], unit)
		if err != nil {
			return nil, err
		}
		if e.Expire(req.args[0], ttl) {
			return 1, nil
		}
		return 0, nil
	}
}

func (e *Engine) ttlCommand(unit time.Duration) commandFunc {
	return func(req *request) (interface{}, error) {
		d, status := e.TTL(req.args[0])
		if status != expiry.Active {
			return int(status), nil
		}
		// round up so that a key with any time left never reports 0
		return int((d + unit - 1) / unit), nil
	}
}

func (e *Engine) persistCommand(req *request) (interface{}, error) {
	if e.Persist(req.args[0]) {
		return 1, nil
	}
	return 0, nil
}

func (e *Engine) typeCommand(req *request) (interface{}, error) {
	return e.Type(req.args[0]), nil
}

func (e *Engine) dbsizeCommand(*request) (interface{}, error) {
	return e.DBSize(), nil
}

func (e *Engine) flushallCommand(*request) (interface{}, error) {
	e.FlushAll()
	return "OK", nil
}

func (e *Engine) getCommand(req *request) (interface{}, error) {
	v, ok, err := e.Get(req.args[0])
	return optional(v, ok, err)
}

// setCommand handles SET key value [EX seconds | PX milliseconds]
func (e *Engine) setCommand(req *request) (interface{}, error) {
	key, value := req.args[0], req.args[1]
	opts := req.args[2:]

	if len(opts) == 0 {
		e.Set(key, value)
		return "OK", nil
	}

	if len(opts) != 2 {
		return nil, invalidArgument("syntax error")
	}

	var unit time.Duration
	switch strings.ToUpper(opts[0]) {
	case "EX":
		unit = time.Second
	case "PX":
		unit = time.Millisecond
	default:
		return nil, invalidArgument("syntax error with command: %s", opts[0])
	}

	ttl, err := parseTTL(opts[1], unit)
	if err != nil {
		return nil, err
	}
	if err := e.SetWithTTL(key, value, ttl); err != nil {
		return nil, err
	}
	return "OK", nil
}

func (e *Engine) pushCommand(fn func(string, ...string) (int, error)) commandFunc {
	return func(req *request) (interface{}, error) {
		n, err := fn(req.args[0], req.args[1:]...)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

func (e *Engine) popCommand(fn func(string) (string, bool, error)) commandFunc {
	return func(req *request) (interface{}, error) {
		v, ok, err := fn(req.args[0])
		return optional(v, ok, err)
	}
}

func (e *Engine) lrangeCommand(req *request) (interface{}, error) {
	start, err := parseInt(req.args[1])
	if err != nil {
		return nil, err
	}
	end, err := parseInt(req.args[2])
	if err != nil {
		return nil, err
	}
	return e.LRange(req.args[0], start, end)
}

func (e *Engine) llenCommand(req *request) (interface{}, error) {
	return e.LLen(req.args[0])
}

// hsetCommand handles HSET key field value [field value ...]; returns the number of new fields
func (e *Engine) hsetCommand(req *request) (interface{}, error) {
	pairs := req.args[1:]
	if len(pairs)%2 != 0 {
		return nil, errors.Wrap(ErrWrongArity, "HSET")
	}
	return e.HPutAll(req.args[0], pairs...)
}

func (e *Engine) hgetCommand(req *request) (interface{}, error) {
	v, ok, err := e.HGet(req.args[0], req.args[1])
	return optional(v, ok, err)
}

func (e *Engine) hgetallCommand(req *request) (interface{}, error) {
	return e.HEntries(req.args[0])
}

func (e *Engine) hdelCommand(req *request) (interface{}, error) {
	return e.HDelete(req.args[0], req.args[1:]...)
}

func (e *Engine) hlenCommand(req *request) (interface{}, error) {
	return e.HLen(req.args[0])
}

func (e *Engine) saddCommand(req *request) (interface{}, error) {
	return e.SAdd(req.args[0], req.args[1:]...)
}

func (e *Engine) smembersCommand(req *request) (interface{}, error) {
	return e.SMembers(req.args[0])
}

func (e *Engine) sismemberCommand(req *request) (interface{}, error) {
	ok, err := e.SIsMember(req.args[0], req.args[1])
	if err != nil {
		return nil, err
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

// spopCommand handles SPOP key [count]. Without count it replies with a single member or nil
func (e *Engine) spopCommand(req *request) (interface{}, error) {
	switch len(req.args) {
	case 1:
		members, err := e.SPop(req.args[0], 1)
		if err != nil || len(members) == 0 {
			return nil, err
		}
		return members[0], nil
	case 2:
		count, err := parseInt(req.args[1])
		if err != nil {
			return nil, err
		}
		return e.SPop(req.args[0], count)
	default:
		return nil, errors.Wrap(ErrWrongArity, "SPOP")
	}
}

func (e *Engine) sremCommand(req *request) (interface{}, error) {
	return e.SRemove(req.args[0], req.args[1:]...)
}

func (e *Engine) scardCommand(req *request) (interface{}, error) {
	return e.SCard(req.args[0])
}

// zaddCommand handles ZADD key score member [score member ...]; returns the number of new members
func (e *Engine) zaddCommand(req *request) (interface{}, error) {
	pairs := req.args[1:]
	if len(pairs)%2 != 0 {
		return nil, errors.Wrap(ErrWrongArity, "ZADD")
	}

	members := make([]datatype.Member, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		score, err := parseScore(pairs[i])
		if err != nil {
			return nil, err
		}
		members = append(members, datatype.Member{Name: pairs[i+1], Score: score})
	}
	return e.ZAddAll(req.args[0], members...)
}

func (e *Engine) zcountCommand(req *request) (interface{}, error) {
	minScore, err := parseScore(req.args[1])
	if err != nil {
		return nil, err
	}
	maxScore, err := parseScore(req.args[2])
	if err != nil {
		return nil, err
	}
	return e.ZCount(req.args[0], minScore, maxScore)
}

// zrangeCommand handles ZRANGE key start stop [WITHSCORES]
func (e *Engine) zrangeCommand(req *request) (interface{}, error) {
	start, err := parseInt(req.args[1])
	if err != nil {
		return nil, err
	}
	end, err := parseInt(req.args[2])
	if err != nil {
		return nil, err
	}

	switch len(req.args) {
	case 3:
		return e.ZRange(req.args[0], start, end)
	case 4:
		if !strings.EqualFold(req.args[3], "WITHSCORES") {
			return nil, invalidArgument("syntax error with command: %s", req.args[3])
		}
		members, err := e.ZRangeWithScores(req.args[0], start, end)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, 2*len(members))
		for _, m := range members {
			out = append(out, m.Name, cast.ToString(m.Score))
		}
		return out, nil
	default:
		return nil, invalidArgument("syntax error")
	}
}

func (e *Engine) zremCommand(req *request) (interface{}, error) {
	return e.ZRemove(req.args[0], req.args[1:]...)
}

func (e *Engine) zscoreCommand(req *request) (interface{}, error) {
	score, ok, err := e.ZScore(req.args[0], req.args[1])
	return optional(score, ok, err)
}

func (e *Engine) zcardCommand(req *request) (interface{}, error) {
	return e.ZCard(req.args[0])
}
