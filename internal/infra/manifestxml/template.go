package manifestxml

// DefaultManifest is the template written by the generate command. It shows
// every supported element, including the optional per-project file actions.
const DefaultManifest = `<?xml version="1.0" encoding="UTF-8" ?>
<manifest>
    <!-- Project's default settings -->
    <default revision="main" uri="gitlab.com"/>

    <!-- path is relative to the manifest file -->
    <project name="repo/name" path="path/folder" revision="branch"/>
    <project name="repo/name" path="folder" revision="tag"/>

    <!-- It is possible to duplicate files using linkfile or copyfile -->
    <!-- src path is relative to the project path -->
    <!-- dest path is relative to the manifest file -->
    <project uri="hostname.com" name="repo/name" path="folder">
        <linkfile src="filename" dest="new_filename"/>
        <copyfile src="filename" dest="new_filename"/>
    </project>
</manifest>
`
