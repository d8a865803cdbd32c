// Copyright 2026 The kindling Authors
// SPDX-License-Identifier: MIT

package cxxlib

// libcxxSources is the catalog of translation units for the C++ standard
// library, in the order they are handed to the sub-build.
// Paths are relative to the library's source root in the installation.
var libcxxSources = []string{
	"src/algorithm.cpp",
	"src/any.cpp",
	"src/atomic.cpp",
	"src/barrier.cpp",
	"src/bind.cpp",
	"src/call_once.cpp",
	"src/charconv.cpp",
	"src/chrono.cpp",
	"src/error_category.cpp",
	"src/exception.cpp",
	"src/expected.cpp",
	"src/filesystem/directory_entry.cpp",
	"src/filesystem/directory_iterator.cpp",
	"src/filesystem/filesystem_clock.cpp",
	"src/filesystem/filesystem_error.cpp",
	"src/filesystem/int128_builtins.cpp",
	"src/filesystem/operations.cpp",
	"src/filesystem/path.cpp",
	"src/fstream.cpp",
	"src/functional.cpp",
	"src/future.cpp",
	"src/hash.cpp",
	"src/ios.cpp",
	"src/ios.instantiations.cpp",
	"src/iostream.cpp",
	"src/locale.cpp",
	"src/memory.cpp",
	"src/memory_resource.cpp",
	"src/mutex.cpp",
	"src/mutex_destructor.cpp",
	"src/new.cpp",
	"src/new_handler.cpp",
	"src/new_helpers.cpp",
	"src/optional.cpp",
	"src/ostream.cpp",
	"src/print.cpp",
	"src/random.cpp",
	"src/random_shuffle.cpp",
	"src/regex.cpp",
	"src/ryu/d2fixed.cpp",
	"src/ryu/d2s.cpp",
	"src/ryu/f2s.cpp",
	"src/shared_mutex.cpp",
	"src/stdexcept.cpp",
	"src/string.cpp",
	"src/strstream.cpp",
	"src/support/ibm/mbsnrtowcs.cpp",
	"src/support/ibm/wcsnrtombs.cpp",
	"src/support/ibm/xlocale_zos.cpp",
	"src/support/solaris/xlocale.cpp",
	"src/support/win32/locale_win32.cpp",
	"src/support/win32/support.cpp",
	"src/support/win32/thread_win32.cpp",
	"src/system_error.cpp",
	"src/thread.cpp",
	"src/typeinfo.cpp",
	"src/valarray.cpp",
	"src/variant.cpp",
	"src/vector.cpp",
	"src/verbose_abort.cpp",
}

// libcxxabiSources is the catalog of translation units for the ABI support
// library, in the order they are handed to the sub-build.
var libcxxabiSources = []string{
	"src/abort_message.cpp",
	"src/cxa_aux_runtime.cpp",
	"src/cxa_default_handlers.cpp",
	"src/cxa_demangle.cpp",
	"src/cxa_exception.cpp",
	"src/cxa_exception_storage.cpp",
	"src/cxa_guard.cpp",
	"src/cxa_handlers.cpp",
	"src/cxa_noexception.cpp",
	"src/cxa_personality.cpp",
	"src/cxa_thread_atexit.cpp",
	"src/cxa_vector.cpp",
	"src/cxa_virtual.cpp",
	"src/fallback_malloc.cpp",
	"src/private_typeinfo.cpp",
	"src/stdlib_exception.cpp",
	"src/stdlib_new_delete.cpp",
	"src/stdlib_stdexcept.cpp",
	"src/stdlib_typeinfo.cpp",
}
