package resolve

// pythonStdlib is the enumerated standard-library module set (§4.3):
// a bare import whose head segment lands here resolves to Stdlib rather
// than Unknown.
var pythonStdlib = map[string]bool{
	"abc": true, "argparse": true, "array": true, "asyncio": true, "base64": true,
	"binascii": true, "bisect": true, "cmath": true, "collections": true,
	"concurrent": true, "contextlib": true, "copy": true, "crypt": true, "csv": true,
	"ctypes": true, "dataclasses": true, "datetime": true, "decimal": true,
	"difflib": true, "email": true, "errno": true, "functools": true, "gc": true,
	"getpass": true, "glob": true, "hashlib": true, "heapq": true, "html": true,
	"http": true, "importlib": true, "inspect": true, "io": true, "ipaddress": true,
	"itertools": true, "json": true, "logging": true, "lzma": true, "math": true,
	"multiprocessing": true, "numbers": true, "operator": true, "os": true,
	"pathlib": true, "pickle": true, "platform": true, "plistlib": true, "queue": true,
	"random": true, "re": true, "sched": true, "secrets": true, "select": true,
	"shlex": true, "shutil": true, "signal": true, "socket": true, "sqlite3": true,
	"ssl": true, "statistics": true, "string": true, "struct": true, "subprocess": true,
	"sys": true, "tempfile": true, "textwrap": true, "threading": true, "time": true,
	"timeit": true, "tkinter": true, "traceback": true, "types": true, "typing": true,
	"typing_extensions": true, "unicodedata": true, "urllib": true, "uuid": true,
	"xml": true, "xmlrpc": true, "zipfile": true, "zlib": true,
}

// IsPythonStdlib reports whether head (the first dotted segment of an
// absolute import) names a standard-library module.
func IsPythonStdlib(head string) bool {
	return pythonStdlib[head]
}
