package files

// AppVue is the default component file, written with script setup.
const AppVue = `<script setup>
import { ref } from 'vue';
const msg = ref('Hello');
</script>
<template>
  <h1>{{ msg }}</h1>
  <p>This file is visible</p>
</template>`

// MainJS is the default entry script.
const MainJS = `import { createApp } from 'vue';
import App from './App.vue';

createApp(App).mount('#app');`

// IndexHTML is the default HTML shell.
const IndexHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <link rel="icon" href="/favicon.ico" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Sandpack App</title>
  </head>
  <body>
    <div id="app"></div>
  </body>
</html>`

// Defaults returns the component file, entry script and HTML shell every
// new workspace starts with.
func Defaults() []File {
	return []File{
		{Value: AppVue, Name: "App.vue", Type: "vue", Editable: true, Visible: true},
		{Value: MainJS, Name: "main.js", Type: "js", Editable: true, Visible: true},
		{Value: IndexHTML, Name: "index.html", Type: "html", Editable: true, Visible: true},
	}
}
