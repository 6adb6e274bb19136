package loader

// fieldNames is the fixed NRB positional schema. A token's position selects
// its name; tokens past the end of this table become overflow fields.
var fieldNames = [...]string{
	"timestamp",       // 0
	"protocol",        // 1
	"host",            // 2
	"direction",       // 3
	"flag1",           // 4
	"flag2",           // 5
	"session_id",      // 6
	"auth_type",       // 7
	"device_type",     // 8
	"value1",          // 9
	"reference_id",    // 10
	"decryption_info", // 11
	"message",         // 12
	"device_id",       // 13
}
